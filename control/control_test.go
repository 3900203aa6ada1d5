package control

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/golden-sieve/command"
	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/timeline"
)

func mustApply(t *testing.T, s State, cmd command.Command) State {
	t.Helper()
	next, err := Apply(s, cmd, DefaultTickConfig())
	require.NoError(t, err)
	return next
}

func TestInitial(t *testing.T) {
	s := Initial()
	assert.Equal(t, parameter.Phi, s.DriveOmega)
	assert.True(t, s.AutoAdvance)
	assert.Equal(t, timeline.PhaseAmorphousChaos, s.Phase)
	assert.False(t, s.Regime().Heating)
	assert.Equal(t, 1.0, s.Resilience())
}

func TestSetParameterClamps(t *testing.T) {
	s := mustApply(t, Initial(), command.NewSetParameter(-3, 40, 500, 9))
	assert.Equal(t, parameter.InteractionMin, s.InteractionU)
	assert.Equal(t, parameter.PotentialMax, s.PotentialDepth)
	assert.Equal(t, parameter.JitterMax, s.TimingJitter)
	assert.Equal(t, parameter.OmegaMax, s.DriveOmega)
	assert.False(t, s.AutoAdvance)

	s = mustApply(t, s, command.NewSetParameter(2, 3, 4, 1.0))
	assert.Equal(t, parameter.OmegaMin, s.DriveOmega)
}

func TestSetParameterNaNKeepsPrevious(t *testing.T) {
	before := Initial()
	s := mustApply(t, before, command.NewSetParameter(math.NaN(), 3, math.NaN(), parameter.Phi))
	assert.Equal(t, before.InteractionU, s.InteractionU)
	assert.Equal(t, before.TimingJitter, s.TimingJitter)
	assert.Equal(t, 3.0, s.PotentialDepth)
}

func TestSetProgressCombinedTransition(t *testing.T) {
	s := mustApply(t, Initial(), command.NewSetProgress(0.85))
	assert.False(t, s.AutoAdvance)
	assert.True(t, s.LatePhase)
	assert.Equal(t, timeline.PhaseGoldenSievingSweep, s.Phase)

	s = mustApply(t, s, command.NewSetProgress(7))
	assert.Equal(t, 1.0, s.Progress, "out of range progress is clamped")
	assert.Equal(t, timeline.PhaseStableLocked, s.Phase)

	s = mustApply(t, s, command.NewSetProgress(-1))
	assert.Equal(t, 0.0, s.Progress)
	assert.False(t, s.LatePhase)
}

func TestSetProgressIdempotent(t *testing.T) {
	once := mustApply(t, Initial(), command.NewSetProgress(0.42))
	twice := mustApply(t, once, command.NewSetProgress(0.42))
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second set-progress changed state (-once +twice):\n%s", diff)
	}
}

func TestTriggerCommands(t *testing.T) {
	s := mustApply(t, Initial(), command.NewTriggerFlare())
	assert.True(t, s.RadiationBurst)
	assert.Equal(t, 1.0, s.FlareExcitation)
	assert.Equal(t, parameter.BurstDuration, s.BurstRemaining)
	assert.False(t, s.AutoAdvance)

	s = mustApply(t, Initial(), command.NewTriggerAvalanche())
	assert.True(t, s.AvalancheActive)
	assert.Equal(t, parameter.AvalancheStartX, s.AvalancheSweepX)
}

func TestToggleCommands(t *testing.T) {
	s := mustApply(t, Initial(), command.NewSetViewMode(timeline.ViewFourD))
	assert.Equal(t, timeline.ViewFourD, s.ViewMode)

	s = mustApply(t, s, command.NewSetRandomPotential(true))
	assert.True(t, s.RandomPotential)

	s = mustApply(t, s, command.NewSetAutoAdvance(false))
	assert.False(t, s.AutoAdvance)
	s = mustApply(t, s, command.NewSetAutoAdvance(true))
	assert.True(t, s.AutoAdvance)

	s = mustApply(t, s, command.NewSetParameter(1, 1, 1, 1.7))
	s = mustApply(t, s, command.NewSnapToPhi())
	assert.Equal(t, parameter.Phi, s.DriveOmega)
}

func TestApplyRejectsUnknown(t *testing.T) {
	before := Initial()
	after, err := Apply(before, command.Command{Type: command.Type(99)}, DefaultTickConfig())
	assert.True(t, errors.Is(err, command.ErrUnknown))
	assert.Equal(t, before, after)

	_, err = Apply(before, command.Command{Type: command.SetProgress, Payload: "half"}, DefaultTickConfig())
	assert.ErrorIs(t, err, command.ErrUnknown)

	_, err = Apply(before, command.Command{Type: command.SetViewMode, Payload: timeline.ViewMode(9)}, DefaultTickConfig())
	assert.ErrorIs(t, err, command.ErrUnknown)
}

func TestTickAdvancesMission(t *testing.T) {
	cfg := TickConfig{Interval: parameter.TickInterval, BurstDuration: time.Second}
	s := Initial().Tick(cfg)
	assert.InDelta(t, parameter.ProgressStep, s.Progress, 1e-12)
}

func TestAssessLadder(t *testing.T) {
	s := Initial()
	assert.Equal(t, Assessment{ConditionAutoSequence, GradeOK}, Assess(s))

	s = mustApply(t, s, command.NewSetParameter(1.5, 2.5, 40, parameter.Phi))
	assert.Equal(t, Assessment{ConditionMissionLock, GradeWarn}, Assess(s))

	s = mustApply(t, s, command.NewSetParameter(1.5, 2.5, 60, parameter.Phi))
	assert.Equal(t, Assessment{ConditionEvaporation, GradeError}, Assess(s))

	s = mustApply(t, s, command.NewSetParameter(1.5, 2.5, 10, parameter.Phi+0.1))
	assert.Equal(t, Assessment{ConditionDriveDrift, GradeError}, Assess(s))
	assert.True(t, OffResonance(s))

	s = mustApply(t, s, command.NewTriggerFlare())
	assert.Equal(t, Assessment{ConditionFlareImpact, GradeCritical}, Assess(s))

	quiet := mustApply(t, Initial(), command.NewSetAutoAdvance(false))
	quiet = mustApply(t, quiet, command.NewSetViewMode(timeline.ViewFourD))
	assert.Equal(t, Assessment{ConditionMissionLock, GradeInfo}, Assess(quiet))
	assert.False(t, OffResonance(quiet))
}

func TestAssessDriftBoundaryBothSidesOfPhi(t *testing.T) {
	for _, omega := range []float64{parameter.Phi + parameter.DetuningThreshold, parameter.Phi - parameter.DetuningThreshold} {
		s := mustApply(t, Initial(), command.NewSetParameter(1.5, 2.5, 10, omega))
		assert.Equal(t, Assessment{ConditionMissionLock, GradeWarn}, Assess(s), "omega %v", omega)
	}
}

func TestConditionStrings(t *testing.T) {
	assert.Equal(t, "EVAPORATION", ConditionEvaporation.String())
	assert.Equal(t, "CRITICAL", GradeCritical.String())
}

func TestCellVersioning(t *testing.T) {
	c := NewCell(Initial())
	first := c.Load()
	require.Equal(t, uint64(1), first.Version)

	next, err := Apply(first.State, command.NewSetProgress(0.5), DefaultTickConfig())
	require.NoError(t, err)
	require.Equal(t, uint64(2), c.Store(next))

	got := c.Load()
	assert.Equal(t, 0.5, got.State.Progress)
	assert.Equal(t, 0.0, first.State.Progress, "earlier publication is untouched")
}
