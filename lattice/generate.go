package lattice

import (
	"math"

	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/vmath"
)

// Generate builds the GridSize x GridSize landscape in row-major order
// With randomMode unset the potential is V0*(cos(2pi*PhiS*x) + cos(2pi*PhiS*y)) and depends on
// nothing but potentialDepth; src seeds amplitude and phase, and the potential only in randomMode
func Generate(potentialDepth float64, randomMode bool, src vmath.Source) []Site {
	sites := make([]Site, parameter.SiteCount)
	half := parameter.GridSize / 2
	spread := potentialDepth * parameter.RandomPotentialSpread

	for i := 0; i < parameter.GridSize; i++ {
		for j := 0; j < parameter.GridSize; j++ {
			x := float64(i - half)
			y := float64(j - half)

			var v float64
			if randomMode {
				v = vmath.Uniform(src, -spread, spread)
			} else {
				v = Potential(potentialDepth, x, y)
			}

			id := Index(i, j)
			sites[id] = Site{
				ID:                 id,
				X:                  x,
				Y:                  y,
				Potential:          v,
				Amplitude:          parameter.AmplitudeSeedMin + src.Float64()*parameter.AmplitudeSeedRange,
				Phase:              src.Float64() * 2 * math.Pi,
				ParticipationRatio: parameter.ParticipationSeed,
				LocalizationLength: parameter.LocalizationSeed,
				IsRandomPotential:  randomMode,
			}
		}
	}
	return sites
}

// Potential evaluates the quasiperiodic landscape at centered coordinates
func Potential(potentialDepth, x, y float64) float64 {
	k := 2 * math.Pi * parameter.StrictPhi
	return potentialDepth * (math.Cos(k*x) + math.Cos(k*y))
}

// Regenerate rebuilds the landscape for a new depth or mode while carrying each site's
// phase and dynamic fields over from prev, so a live lattice does not restart its oscillation
func Regenerate(prev []Site, potentialDepth float64, randomMode bool, src vmath.Source) []Site {
	next := Generate(potentialDepth, randomMode, src)
	if len(prev) != len(next) {
		return next
	}
	for i := range next {
		next[i].Phase = prev[i].Phase
		next[i].Amplitude = prev[i].Amplitude
		next[i].ParticipationRatio = prev[i].ParticipationRatio
		next[i].LocalizationLength = prev[i].LocalizationLength
	}
	return next
}
