package command

import "github.com/lixenwraith/golden-sieve/timeline"

// ParameterPayload carries the four tunable physics parameters
type ParameterPayload struct {
	InteractionU   float64 `yaml:"interaction_u"`
	PotentialDepth float64 `yaml:"potential_depth"`
	TimingJitter   float64 `yaml:"timing_jitter"`
	DriveOmega     float64 `yaml:"drive_omega"`
}

func NewSetParameter(u, v0, jitter, omega float64) Command {
	return Command{Type: SetParameter, Payload: ParameterPayload{
		InteractionU:   u,
		PotentialDepth: v0,
		TimingJitter:   jitter,
		DriveOmega:     omega,
	}}
}

func NewSetProgress(value float64) Command {
	return Command{Type: SetProgress, Payload: value}
}

func NewTriggerFlare() Command {
	return Command{Type: TriggerFlare}
}

func NewTriggerAvalanche() Command {
	return Command{Type: TriggerAvalanche}
}

func NewSetViewMode(mode timeline.ViewMode) Command {
	return Command{Type: SetViewMode, Payload: mode}
}

func NewSetRandomPotential(enabled bool) Command {
	return Command{Type: SetRandomPotential, Payload: enabled}
}

func NewSetAutoAdvance(enabled bool) Command {
	return Command{Type: SetAutoAdvance, Payload: enabled}
}

func NewSnapToPhi() Command {
	return Command{Type: SnapToPhi}
}
