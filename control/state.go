package control

import (
	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/physics"
	"github.com/lixenwraith/golden-sieve/timeline"
)

// State is the immutable per-tick control snapshot consumed by every simulation stage
// Replaced wholesale on each command or tick, never mutated after publication
type State struct {
	InteractionU    float64 // [0,10]
	PotentialDepth  float64 // [0,12]
	TimingJitter    float64 // [0,100]
	DriveOmega      float64 // [1.45,1.75], nominally Phi
	RandomPotential bool    // static landscape drawn uniformly instead of quasiperiodic

	timeline.Mission
}

// Initial returns the cold-boot control state
func Initial() State {
	return State{
		InteractionU:   parameter.InitialInteraction,
		PotentialDepth: parameter.InitialPotential,
		TimingJitter:   parameter.InitialJitter,
		DriveOmega:     parameter.Phi,
		Mission:        timeline.NewMission(),
	}
}

// Regime evaluates the shared detuning/heating flag for this snapshot
func (s State) Regime() physics.Regime {
	return physics.Evaluate(s.TimingJitter, s.DriveOmega)
}

// Resilience returns the detuning-damped responsiveness for this snapshot
func (s State) Resilience() float64 {
	return physics.Resilience(s.DriveOmega)
}

// Tick advances the timeline-owned fields by one fixed tick
func (s State) Tick(cfg TickConfig) State {
	s.Mission = s.Mission.Advance(s.Resilience(), cfg.Interval)
	return s
}
