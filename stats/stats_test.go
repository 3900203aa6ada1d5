package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/physics"
	"github.com/lixenwraith/golden-sieve/vmath"
)

func TestMSDAtTimeZeroIsOne(t *testing.T) {
	for _, u := range []float64{0, 0.5, 1.5, 5, 10} {
		assert.Equal(t, 1.0, MeanSquaredDisplacement(0, u, 0, parameter.Phi), "U=%v", u)
	}
}

func TestMSDExponent(t *testing.T) {
	// heating: exponent 1, linear growth
	assert.InDelta(t, 10.0, MeanSquaredDisplacement(9, 1.5, 80, parameter.Phi), 1e-12)

	// localized: exponent = scaling law + 4*detuning, capped at 1
	u, omega := 1.5, parameter.Phi+0.01
	alpha := physics.ScalingLaw(u) + 4*physics.Detuning(omega)
	assert.InDelta(t, math.Pow(10, alpha), MeanSquaredDisplacement(9, u, 10, omega), 1e-9)

	// U = 0 on resonance gives alpha 1 exactly, detuning pushes it past the cap
	assert.InDelta(t, 10.0, MeanSquaredDisplacement(9, 0, 10, parameter.Phi+0.05), 1e-12)
}

func TestMSDDetuningGainDiffersFromLattice(t *testing.T) {
	r := physics.Evaluate(10, parameter.Phi+0.02)
	lat := r.ScalingAlpha(2, parameter.LatticeDetuningGain)
	msd := r.ScalingAlpha(2, parameter.MSDDetuningGain)
	assert.InDelta(t, 2*r.Detuning, msd-lat, 1e-12)
}

func TestLevelSpacingShape(t *testing.T) {
	src := vmath.NewFastRand(9)
	for _, heating := range []bool{false, true} {
		h := LevelSpacingHistogram(heating, src)
		require.Len(t, h, 20)
		for i, v := range h {
			s := float64(i) / (20.0 / 3)
			law := SpacingLaw(s, heating)
			assert.GreaterOrEqual(t, v, law, "bin %d", i)
			assert.Less(t, v, law+parameter.LevelSpacingNoise, "bin %d", i)
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestSpacingLaw(t *testing.T) {
	assert.Equal(t, 0.0, SpacingLaw(0, false), "Wigner-like law vanishes at s=0")
	assert.Equal(t, 1.0, SpacingLaw(0, true), "Poisson-like law peaks at s=0")
	assert.InDelta(t, math.Exp(-1.5), SpacingLaw(1.5, true), 1e-12)
}

func TestSample(t *testing.T) {
	src := vmath.NewFastRand(4)
	for i := 0; i < 200; i++ {
		s := Sample(float64(i), 1.5, 10, parameter.Phi, src)
		require.Equal(t, MeanSquaredDisplacement(float64(i), 1.5, 10, parameter.Phi), s.TheoreticalValue)
		ratio := s.MeasuredValue / s.TheoreticalValue
		require.GreaterOrEqual(t, ratio, 1-parameter.MSDMeasurementNoise)
		require.Less(t, ratio, 1+parameter.MSDMeasurementNoise)
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Push(MSDSample{Time: float64(i)})
	}
	require.Equal(t, 3, h.Len())
	snap := h.Snapshot()
	assert.Equal(t, []float64{2, 3, 4}, []float64{snap[0].Time, snap[1].Time, snap[2].Time})

	h.Reset()
	assert.Zero(t, h.Len())
	assert.Empty(t, h.Snapshot())
	assert.Equal(t, 3, h.Cap())
}

func TestHistoryPartialFill(t *testing.T) {
	h := NewHistory(4)
	h.Push(MSDSample{Time: 1})
	h.Push(MSDSample{Time: 2})
	snap := h.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, 1.0, snap[0].Time)

	snap[0].Time = 99
	assert.Equal(t, 1.0, h.Snapshot()[0].Time, "snapshot is a copy")
	assert.Equal(t, 1, NewHistory(0).Cap())
}
