package stats

import (
	"math"

	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/physics"
	"github.com/lixenwraith/golden-sieve/vmath"
)

// MeanSquaredDisplacement returns (time+1)^min(1, alpha') where alpha' follows the lattice
// scaling rule with the MSD detuning gain of 4 instead of 2
func MeanSquaredDisplacement(time, interactionU, jitter, driveOmega float64) float64 {
	r := physics.Evaluate(jitter, driveOmega)
	alpha := r.ScalingAlpha(interactionU, parameter.MSDDetuningGain)
	return math.Pow(time+1, math.Min(1.0, alpha))
}

// LevelSpacingHistogram returns LevelSpacingBins values at s = i/(bins/3), Wigner-like
// (pi/2)*s*exp(-(pi/4)*s^2) when not heating and Poisson-like exp(-s) when heating,
// each with independent uniform noise in [0, LevelSpacingNoise)
func LevelSpacingHistogram(heating bool, src vmath.Source) []float64 {
	return LevelSpacingInto(make([]float64, parameter.LevelSpacingBins), heating, src)
}

// LevelSpacingInto fills dst (length = bin count) and returns it
func LevelSpacingInto(dst []float64, heating bool, src vmath.Source) []float64 {
	scale := float64(len(dst)) / 3
	for i := range dst {
		s := float64(i) / scale
		dst[i] = SpacingLaw(s, heating) + src.Float64()*parameter.LevelSpacingNoise
	}
	return dst
}

// SpacingLaw is the noiseless spacing density at s
func SpacingLaw(s float64, heating bool) float64 {
	if heating {
		return math.Exp(-s)
	}
	return (math.Pi / 2) * s * math.Exp(-(math.Pi/4)*s*s)
}
