package engine

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/golden-sieve/control"
	"github.com/lixenwraith/golden-sieve/lattice"
	"github.com/lixenwraith/golden-sieve/physics"
	"github.com/lixenwraith/golden-sieve/stats"
)

// Snapshot is the read-only view published once per tick
// Slices are shared between consecutive snapshots when unchanged and must not be written
type Snapshot struct {
	RunID   uuid.UUID
	Version uint64 // control state version
	Tick    uint64
	SimTime float64

	State      control.State
	Regime     physics.Regime
	Resilience float64
	Assessment control.Assessment
	ShardScale float64 // visual shard scale for the current progress

	Sites   []lattice.Site
	Summary lattice.Summary

	History   []stats.MSDSample // oldest first
	Histogram []float64
}
