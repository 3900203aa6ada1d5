package timeline

import (
	"math"
	"time"

	"github.com/lixenwraith/golden-sieve/parameter"
)

// Mission is the timeline-owned slice of the control state
// Value type: every transition returns a new Mission, nothing is mutated in place
type Mission struct {
	Progress    float64 // monotonic while AutoAdvance is set
	Phase       Phase
	ViewMode    ViewMode
	SieveSweepX float64
	AutoAdvance bool
	LatePhase   bool // progress > LatePhaseThreshold at the last progress write

	AvalancheSweepX float64
	AvalancheActive bool
	FlareExcitation float64 // [0,1]
	RadiationBurst  bool
	BurstRemaining  time.Duration
}

// NewMission returns the cold-boot mission: progress 0 with automatic advancement
func NewMission() Mission {
	m := Mission{
		AutoAdvance:     true,
		AvalancheSweepX: parameter.AvalancheParkedX,
	}
	return m.apply(Lookup(0))
}

// Advance runs one fixed tick: progress step and phase table while automatic,
// then the avalanche, flare and burst decays which run in every mode
func (m Mission) Advance(resilience float64, dt time.Duration) Mission {
	if m.AutoAdvance {
		next := math.Min(1.0, m.Progress+StepSize(m.Progress))
		m.Progress = next
		m.LatePhase = next > parameter.LatePhaseThreshold
		m = m.apply(Lookup(next))
		if m.Phase.Terminal() {
			m.AutoAdvance = false
		}
	}

	if m.AvalancheActive {
		m.AvalancheSweepX = math.Min(parameter.AvalancheEndX, m.AvalancheSweepX+parameter.AvalancheRate*resilience)
		if m.AvalancheSweepX >= parameter.AvalancheEndX {
			m.AvalancheActive = false
		}
	}

	if m.FlareExcitation > 0 {
		m.FlareExcitation = math.Max(0, m.FlareExcitation-parameter.FlareDecayRate*resilience)
	}

	if m.RadiationBurst {
		m.BurstRemaining -= dt
		if m.BurstRemaining <= 0 {
			m.BurstRemaining = 0
			m.RadiationBurst = false
		}
	}

	return m
}

// WithProgress is the manual override: progress, automatic flag and late-phase flag
// change together with the derived phase fields in one value
func (m Mission) WithProgress(progress float64) Mission {
	m.Progress = progress
	m.AutoAdvance = false
	m.LatePhase = progress > parameter.LatePhaseThreshold
	return m.apply(Lookup(progress))
}

// WithAutoAdvance toggles automatic advancement
func (m Mission) WithAutoAdvance(enabled bool) Mission {
	m.AutoAdvance = enabled
	return m
}

// WithViewMode overrides the projection until the next automatic phase write
func (m Mission) WithViewMode(v ViewMode) Mission {
	m.ViewMode = v
	return m
}

// TriggerFlare starts a radiation burst of the given duration at full excitation
func (m Mission) TriggerFlare(burst time.Duration) Mission {
	m.RadiationBurst = burst > 0
	m.BurstRemaining = burst
	m.FlareExcitation = 1.0
	m.AutoAdvance = false
	return m
}

// TriggerAvalanche launches the sweep front from its start position
func (m Mission) TriggerAvalanche() Mission {
	m.AvalancheSweepX = parameter.AvalancheStartX
	m.AvalancheActive = true
	m.AutoAdvance = false
	return m
}

func (m Mission) apply(e Entry) Mission {
	m.Phase = e.Phase
	m.ViewMode = e.ViewMode
	if !e.KeepSieve {
		m.SieveSweepX = e.SieveX
	}
	return m
}
