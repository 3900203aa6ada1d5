package lattice

import (
	"fmt"

	"github.com/lixenwraith/golden-sieve/parameter"
)

// Site is one lattice cell; the slice index equals ID
// Amplitude, ParticipationRatio and LocalizationLength are the only fields that change after creation
type Site struct {
	ID        int     // row-major index i*GridSize + j
	X, Y      float64 // centered coordinates i - GridSize/2, j - GridSize/2
	Potential float64 // static landscape value
	Phase     float64 // fixed random phase offset in [0, 2pi)

	Amplitude          float64 // [AmplitudeMin, AmplitudeMax]
	ParticipationRatio float64 // order parameter, non-negative
	LocalizationLength float64 // xi, disorder radius

	IsRandomPotential bool
}

// Index returns the row-major id of grid coordinates (i, j)
func Index(i, j int) int {
	return i*parameter.GridSize + j
}

// Verify checks the population and clamp contracts of a site sequence
// Contract violations are programming errors surfaced in tests, not runtime conditions
func Verify(sites []Site) error {
	if len(sites) != parameter.SiteCount {
		return fmt.Errorf("site count %d, want %d", len(sites), parameter.SiteCount)
	}
	for i := range sites {
		s := &sites[i]
		if s.ID != i {
			return fmt.Errorf("site %d carries id %d", i, s.ID)
		}
		if s.Amplitude < parameter.AmplitudeMin || s.Amplitude > parameter.AmplitudeMax {
			return fmt.Errorf("site %d amplitude %v out of bounds", i, s.Amplitude)
		}
		if s.ParticipationRatio < 0 {
			return fmt.Errorf("site %d participation ratio %v negative", i, s.ParticipationRatio)
		}
	}
	return nil
}

// Summary is the aggregate view published with metrics
type Summary struct {
	MeanAmplitude     float64
	MaxAmplitude      float64
	MeanParticipation float64
	MeanLocalization  float64
}

// Summarize aggregates a site sequence
func Summarize(sites []Site) Summary {
	var sum Summary
	if len(sites) == 0 {
		return sum
	}
	for i := range sites {
		s := &sites[i]
		sum.MeanAmplitude += s.Amplitude
		sum.MeanParticipation += s.ParticipationRatio
		sum.MeanLocalization += s.LocalizationLength
		if s.Amplitude > sum.MaxAmplitude {
			sum.MaxAmplitude = s.Amplitude
		}
	}
	n := float64(len(sites))
	sum.MeanAmplitude /= n
	sum.MeanParticipation /= n
	sum.MeanLocalization /= n
	return sum
}
