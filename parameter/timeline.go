package parameter

import "time"

// Mission Timeline Advancement
const (
	// ProgressStep is the per-tick progress increment
	ProgressStep = 0.0035

	// ProgressStepSlow applies inside the critical sweep window
	ProgressStepSlow = 0.0018
	SlowWindowLow    = 0.6
	SlowWindowHigh   = 0.9

	// LatePhaseThreshold marks the auxiliary late-phase flag on manual progress writes
	LatePhaseThreshold = 0.8

	// ResilienceMin and ResilienceDetuningGain shape max(min, 1 - gain*detuning)
	ResilienceMin          = 0.005
	ResilienceDetuningGain = 15.0
)

// Phase Boundaries (lower bound inclusive)
const (
	PhaseExtrusionStart = 0.3
	PhaseSweepStart     = 0.6
	PhaseLockStart      = 0.88
	PhaseStableStart    = 1.0
)

// Sieve Sweep Geometry
const (
	SieveParkedX     = -250.0
	SieveSweepFromX  = -220.0
	SieveSweepToX    = 250.0
	SieveLockedX     = 250.0
	AvalancheParkedX = -450.0
	AvalancheStartX  = -400.0
	AvalancheEndX    = 450.0
	AvalancheRate    = 20.0
)

// Flare / Radiation Burst
const (
	FlareDecayRate = 0.05

	// BurstDuration is how long a radiation burst stays active after a flare
	BurstDuration = 2 * time.Second
)
