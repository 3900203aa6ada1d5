package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/golden-sieve/parameter"
)

func TestLookupBoundaries(t *testing.T) {
	tests := []struct {
		progress float64
		phase    Phase
		view     ViewMode
		sieveX   float64
		keep     bool
	}{
		{0, PhaseAmorphousChaos, ViewNormal, -250, false},
		{0.2999, PhaseAmorphousChaos, ViewNormal, -250, false},
		{0.3, PhaseFourDExtrusion, ViewFourD, -250, false},
		{0.5999, PhaseFourDExtrusion, ViewFourD, -250, false},
		{0.6, PhaseGoldenSievingSweep, ViewFourD, -220, false},
		{0.88, PhaseTopologicalLock, ViewNormal, 250, false},
		{0.9999, PhaseTopologicalLock, ViewNormal, 250, false},
		{1.0, PhaseStableLocked, ViewNormal, 0, true},
	}
	for _, tt := range tests {
		e := Lookup(tt.progress)
		assert.Equal(t, tt.phase, e.Phase, "progress %v", tt.progress)
		assert.Equal(t, tt.view, e.ViewMode, "progress %v", tt.progress)
		assert.Equal(t, tt.keep, e.KeepSieve, "progress %v", tt.progress)
		if !tt.keep {
			assert.InDelta(t, tt.sieveX, e.SieveX, 1e-9, "progress %v", tt.progress)
		}
	}
}

func TestLookupSweepIsLinear(t *testing.T) {
	prev := Lookup(0.6).SieveX
	for p := 0.61; p < 0.88; p += 0.01 {
		x := Lookup(p).SieveX
		assert.Greater(t, x, prev)
		assert.LessOrEqual(t, x, parameter.SieveSweepToX)
		prev = x
	}
}

func TestStepSizeWindow(t *testing.T) {
	assert.Equal(t, parameter.ProgressStep, StepSize(0.6), "window is open at 0.6")
	assert.Equal(t, parameter.ProgressStepSlow, StepSize(0.61))
	assert.Equal(t, parameter.ProgressStepSlow, StepSize(0.89))
	assert.Equal(t, parameter.ProgressStep, StepSize(0.9), "window is open at 0.9")
}

func TestAdvanceMonotonicUntilTerminal(t *testing.T) {
	m := NewMission()
	require.True(t, m.AutoAdvance)
	require.Equal(t, PhaseAmorphousChaos, m.Phase)

	seen := map[Phase]bool{m.Phase: true}
	prev := m.Progress
	ticks := 0
	for m.AutoAdvance {
		m = m.Advance(1.0, parameter.TickInterval)
		require.GreaterOrEqual(t, m.Progress, prev)
		require.Equal(t, Lookup(m.Progress).Phase, m.Phase)
		prev = m.Progress
		seen[m.Phase] = true
		ticks++
		require.Less(t, ticks, 10000, "timeline never reached terminal phase")
	}

	assert.Equal(t, 1.0, m.Progress)
	assert.Equal(t, PhaseStableLocked, m.Phase)
	assert.Equal(t, ViewNormal, m.ViewMode)
	assert.Len(t, seen, 5)

	// Terminal phase never re-enables advancement on its own
	for i := 0; i < 100; i++ {
		m = m.Advance(1.0, parameter.TickInterval)
	}
	assert.False(t, m.AutoAdvance)
	assert.Equal(t, 1.0, m.Progress)
}

func TestStableLockedKeepsSieve(t *testing.T) {
	m := NewMission().WithProgress(0.95)
	require.Equal(t, parameter.SieveLockedX, m.SieveSweepX)
	m = m.WithProgress(1.0)
	assert.Equal(t, PhaseStableLocked, m.Phase)
	assert.Equal(t, parameter.SieveLockedX, m.SieveSweepX)
}

func TestWithProgressOverride(t *testing.T) {
	m := NewMission()
	m = m.WithProgress(0.85)
	assert.False(t, m.AutoAdvance)
	assert.True(t, m.LatePhase)
	assert.Equal(t, PhaseGoldenSievingSweep, m.Phase)

	m = m.WithProgress(0.8)
	assert.False(t, m.LatePhase, "threshold is strict")

	frozen := m.Advance(1.0, parameter.TickInterval)
	assert.Equal(t, m.Progress, frozen.Progress, "manual mode does not advance progress")
}

func TestWithProgressIdempotent(t *testing.T) {
	m := NewMission().WithProgress(0.7)
	assert.Equal(t, m, m.WithProgress(0.7))
}

func TestAvalancheSweep(t *testing.T) {
	m := NewMission().TriggerAvalanche()
	require.True(t, m.AvalancheActive)
	require.False(t, m.AutoAdvance)
	require.Equal(t, parameter.AvalancheStartX, m.AvalancheSweepX)

	prev := m.AvalancheSweepX
	for m.AvalancheActive {
		m = m.Advance(1.0, parameter.TickInterval)
		require.Greater(t, m.AvalancheSweepX, prev)
		prev = m.AvalancheSweepX
	}
	assert.Equal(t, parameter.AvalancheEndX, m.AvalancheSweepX)

	parked := m.Advance(1.0, parameter.TickInterval)
	assert.Equal(t, m.AvalancheSweepX, parked.AvalancheSweepX)
}

func TestAvalancheRateScalesWithResilience(t *testing.T) {
	m := NewMission().TriggerAvalanche()
	fast := m.Advance(1.0, parameter.TickInterval)
	slow := m.Advance(0.25, parameter.TickInterval)
	assert.InDelta(t, -380, fast.AvalancheSweepX, 1e-9)
	assert.InDelta(t, -395, slow.AvalancheSweepX, 1e-9)
}

func TestFlareDecayAndBurstWindow(t *testing.T) {
	m := NewMission().TriggerFlare(2 * time.Second)
	require.True(t, m.RadiationBurst)
	require.Equal(t, 1.0, m.FlareExcitation)

	m = m.Advance(1.0, time.Second)
	assert.InDelta(t, 0.95, m.FlareExcitation, 1e-12)
	assert.True(t, m.RadiationBurst)

	m = m.Advance(1.0, time.Second)
	assert.False(t, m.RadiationBurst)
	assert.Zero(t, m.BurstRemaining)

	for i := 0; i < 100; i++ {
		m = m.Advance(1.0, parameter.TickInterval)
		require.GreaterOrEqual(t, m.FlareExcitation, 0.0)
	}
	assert.Zero(t, m.FlareExcitation)
}

func TestDecaysRunInManualMode(t *testing.T) {
	m := NewMission().WithProgress(0.4).TriggerFlare(time.Second)
	next := m.Advance(1.0, parameter.TickInterval)
	assert.Less(t, next.FlareExcitation, m.FlareExcitation)
}

func TestPhaseStrings(t *testing.T) {
	assert.Equal(t, "GOLDEN_SIEVING_SWEEP", PhaseGoldenSievingSweep.String())
	assert.Equal(t, "UNKNOWN", Phase(99).String())
	v, ok := ParseViewMode("4D")
	assert.True(t, ok)
	assert.Equal(t, ViewFourD, v)
	_, ok = ParseViewMode("sideways")
	assert.False(t, ok)
}
