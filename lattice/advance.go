package lattice

import (
	"math"

	"github.com/lixenwraith/golden-sieve/control"
	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/physics"
	"github.com/lixenwraith/golden-sieve/vmath"
)

// Dynamics are the per-tick values identical for every site, derived once from the snapshot
type Dynamics struct {
	Regime             physics.Regime
	ScalingAlpha       float64
	LocalizationLength float64
	Participation      float64 // for quasiperiodic sites; random sites use RandomSiteParticipation
	Noise              float64
}

// Derive evaluates steps 1-4 and the shared parts of 5-6 of the localization update
func Derive(c control.State) Dynamics {
	r := c.Regime()
	d := Dynamics{
		Regime:       r,
		ScalingAlpha: r.ScalingAlpha(c.InteractionU, parameter.LatticeDetuningGain),
	}

	if r.Heating {
		d.LocalizationLength = 8.0 + c.TimingJitter/15 + 10*r.Detuning
		d.Participation = math.Max(parameter.ParticipationMin, (c.PotentialDepth/5)*(1-0.98))
		d.Noise = parameter.NoiseHeating
	} else {
		d.LocalizationLength = math.Max(parameter.LocalizationMin,
			1.2/(math.Log(math.Abs(c.PotentialDepth)+1.2)+0.1)+15*r.Detuning)
		d.Participation = math.Max(parameter.ParticipationMin, (c.PotentialDepth/5)*(1-0.02))
		d.Noise = parameter.NoiseLocalized
	}

	if c.RadiationBurst {
		d.Noise += parameter.NoiseBurst
	}
	d.Noise += 0.5 * r.Detuning

	return d
}

// Advance returns the next site sequence for elapsed simulation time
// The input slice is never written; every site is updated unconditionally
func Advance(sites []Site, c control.State, elapsed float64, src vmath.Source) []Site {
	next := make([]Site, len(sites))
	AdvanceInto(next, sites, c, elapsed, src)
	return next
}

// AdvanceInto writes the update of src sites into dst, which must not alias sites
func AdvanceInto(dst, sites []Site, c control.State, elapsed float64, src vmath.Source) {
	d := Derive(c)

	for i := range sites {
		s := sites[i]

		ipr := d.Participation
		if s.IsRandomPotential {
			ipr = parameter.RandomSiteParticipation
		}

		freq := 1.0 + 0.3/(ipr+0.1) + 1.5*d.ScalingAlpha
		amp := s.Amplitude + math.Sin(elapsed*freq+s.Phase)*0.02 + vmath.Centered(src)*d.Noise

		s.Amplitude = vmath.Clamp(amp, parameter.AmplitudeMin, parameter.AmplitudeMax)
		s.ParticipationRatio = ipr
		s.LocalizationLength = d.LocalizationLength
		dst[i] = s
	}
}
