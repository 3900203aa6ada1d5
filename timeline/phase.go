package timeline

import (
	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/vmath"
)

// Phase identifies the active mission step; exactly one is active per tick
type Phase uint8

const (
	PhaseAmorphousChaos Phase = iota
	PhaseFourDExtrusion
	PhaseGoldenSievingSweep
	PhaseTopologicalLock
	PhaseStableLocked
)

var phaseNames = [...]string{
	PhaseAmorphousChaos:     "AMORPHOUS_CHAOS",
	PhaseFourDExtrusion:     "FOUR_D_EXTRUSION",
	PhaseGoldenSievingSweep: "GOLDEN_SIEVING_SWEEP",
	PhaseTopologicalLock:    "TOPOLOGICAL_LOCK",
	PhaseStableLocked:       "STABLE_LOCKED",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "UNKNOWN"
}

// Terminal reports whether the phase ends automatic advancement
func (p Phase) Terminal() bool {
	return p == PhaseStableLocked
}

// ViewMode selects the projection consumed by renderers and the extrusion term
type ViewMode uint8

const (
	ViewNormal ViewMode = iota
	ViewFourD
)

func (v ViewMode) String() string {
	if v == ViewFourD {
		return "FOUR_D"
	}
	return "NORMAL"
}

// ParseViewMode accepts the names produced by String
func ParseViewMode(s string) (ViewMode, bool) {
	switch s {
	case "NORMAL", "normal":
		return ViewNormal, true
	case "FOUR_D", "four_d", "4D", "4d":
		return ViewFourD, true
	}
	return ViewNormal, false
}

// Entry is one row of the phase table
type Entry struct {
	Phase    Phase
	ViewMode ViewMode
	// SieveX is the sweep position; ignored when KeepSieve is set
	SieveX    float64
	KeepSieve bool
}

// Lookup maps progress to its phase table row, intervals half-open with inclusive lower bound
func Lookup(progress float64) Entry {
	switch {
	case progress < parameter.PhaseExtrusionStart:
		return Entry{Phase: PhaseAmorphousChaos, ViewMode: ViewNormal, SieveX: parameter.SieveParkedX}
	case progress < parameter.PhaseSweepStart:
		return Entry{Phase: PhaseFourDExtrusion, ViewMode: ViewFourD, SieveX: parameter.SieveParkedX}
	case progress < parameter.PhaseLockStart:
		x := vmath.MapLinear(progress,
			parameter.PhaseSweepStart, parameter.PhaseLockStart,
			parameter.SieveSweepFromX, parameter.SieveSweepToX)
		return Entry{Phase: PhaseGoldenSievingSweep, ViewMode: ViewFourD, SieveX: x}
	case progress < parameter.PhaseStableStart:
		return Entry{Phase: PhaseTopologicalLock, ViewMode: ViewNormal, SieveX: parameter.SieveLockedX}
	default:
		return Entry{Phase: PhaseStableLocked, ViewMode: ViewNormal, KeepSieve: true}
	}
}

// StepSize returns the per-tick increment for the current progress
// Slowed inside the open window (0.6, 0.9) around the critical sweep
func StepSize(progress float64) float64 {
	if progress > parameter.SlowWindowLow && progress < parameter.SlowWindowHigh {
		return parameter.ProgressStepSlow
	}
	return parameter.ProgressStep
}
