package control

import (
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/golden-sieve/command"
	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/timeline"
	"github.com/lixenwraith/golden-sieve/vmath"
)

// TickConfig carries the timing the timeline needs to convert durations into ticks
type TickConfig struct {
	Interval      time.Duration
	BurstDuration time.Duration
}

// DefaultTickConfig matches the parameter package timing
func DefaultTickConfig() TickConfig {
	return TickConfig{
		Interval:      parameter.TickInterval,
		BurstDuration: parameter.BurstDuration,
	}
}

// Apply performs one atomic command transition
// Numeric inputs are clamped to their domains, never rejected; a NaN keeps the previous value
// Unknown types or mismatched payloads return the state unchanged with command.ErrUnknown
func Apply(s State, cmd command.Command, cfg TickConfig) (State, error) {
	switch cmd.Type {
	case command.SetParameter:
		p, ok := cmd.Payload.(command.ParameterPayload)
		if !ok {
			return s, malformed(cmd)
		}
		s.InteractionU = clampKeep(p.InteractionU, s.InteractionU, parameter.InteractionMin, parameter.InteractionMax)
		s.PotentialDepth = clampKeep(p.PotentialDepth, s.PotentialDepth, parameter.PotentialMin, parameter.PotentialMax)
		s.TimingJitter = clampKeep(p.TimingJitter, s.TimingJitter, parameter.JitterMin, parameter.JitterMax)
		s.DriveOmega = clampKeep(p.DriveOmega, s.DriveOmega, parameter.OmegaMin, parameter.OmegaMax)
		s.Mission = s.Mission.WithAutoAdvance(false)

	case command.SetProgress:
		v, ok := cmd.Payload.(float64)
		if !ok {
			return s, malformed(cmd)
		}
		s.Mission = s.Mission.WithProgress(clampKeep(v, s.Progress, 0, 1))

	case command.TriggerFlare:
		s.Mission = s.Mission.TriggerFlare(cfg.BurstDuration)

	case command.TriggerAvalanche:
		s.Mission = s.Mission.TriggerAvalanche()

	case command.SetViewMode:
		v, ok := cmd.Payload.(timeline.ViewMode)
		if !ok || v > timeline.ViewFourD {
			return s, malformed(cmd)
		}
		s.Mission = s.Mission.WithViewMode(v)

	case command.SetRandomPotential:
		v, ok := cmd.Payload.(bool)
		if !ok {
			return s, malformed(cmd)
		}
		s.RandomPotential = v

	case command.SetAutoAdvance:
		v, ok := cmd.Payload.(bool)
		if !ok {
			return s, malformed(cmd)
		}
		s.Mission = s.Mission.WithAutoAdvance(v)

	case command.SnapToPhi:
		s.DriveOmega = parameter.Phi

	default:
		return s, fmt.Errorf("%w: type %d", command.ErrUnknown, cmd.Type)
	}

	return s, nil
}

func malformed(cmd command.Command) error {
	return fmt.Errorf("%w: %s payload %T", command.ErrUnknown, cmd.Type, cmd.Payload)
}

func clampKeep(v, prev, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return prev
	}
	return vmath.Clamp(v, lo, hi)
}
