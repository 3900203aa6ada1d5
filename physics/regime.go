package physics

import (
	"math"

	"github.com/lixenwraith/golden-sieve/parameter"
)

// Regime is the detuning/heating evaluation shared by the lattice amplitude law,
// the MSD exponent and the level-spacing law; computed once per control snapshot
type Regime struct {
	Detuning float64 // |omega - Phi|
	Heating  bool    // delocalized regime flag
}

// Evaluate computes the regime for a jitter/drive pair
func Evaluate(jitter, omega float64) Regime {
	d := Detuning(omega)
	return Regime{Detuning: d, Heating: IsHeating(jitter, d)}
}

// Detuning returns the drive distance from the golden-ratio resonance
func Detuning(omega float64) float64 {
	return math.Abs(omega - parameter.Phi)
}

// IsHeating reports the delocalized regime, strict inequalities on both thresholds
func IsHeating(jitter, detuning float64) bool {
	return jitter > parameter.JitterThreshold || Drifting(detuning)
}

// Drifting reports a detuning beyond the heating threshold
// The comparison carries DetuningEpsilon, so omega = Phi +/- threshold is not drifting
func Drifting(detuning float64) bool {
	return detuning > parameter.DetuningThreshold+parameter.DetuningEpsilon
}

// ScalingLaw returns alpha0 * (1 - tanh(U / delta))
func ScalingLaw(interactionU float64) float64 {
	return parameter.ScalingAlpha0 * (1 - math.Tanh(interactionU/parameter.ScalingDelta))
}

// ScalingAlpha returns the regime exponent: 1 while heating, otherwise the scaling law
// plus detuningGain*detuning; callers pass their own gain (lattice 2, MSD 4)
func (r Regime) ScalingAlpha(interactionU, detuningGain float64) float64 {
	if r.Heating {
		return 1.0
	}
	return ScalingLaw(interactionU) + detuningGain*r.Detuning
}

// Resilience returns max(0.005, 1 - 15*detuning)
func Resilience(omega float64) float64 {
	return math.Max(parameter.ResilienceMin, 1.0-parameter.ResilienceDetuningGain*Detuning(omega))
}

// ValidateJitterBudget is the pre-flight predicate for a jitter value that stays out of
// the heating regime; it neither clamps nor fails
func ValidateJitterBudget(jitter float64) bool {
	return jitter <= parameter.JitterThreshold
}
