package command

import "errors"

// ErrUnknown is returned for a command whose type or payload is not recognized
var ErrUnknown = errors.New("unknown command")

// Type represents the kind of inbound command
type Type int

const (
	// SetParameter replaces U, V0, jitter and omega in one transition
	// Trigger: UI sliders, config reload | Payload: ParameterPayload
	SetParameter Type = iota + 1

	// SetProgress is the manual timeline override
	// Trigger: UI progress scrubber | Payload: float64
	SetProgress

	// TriggerFlare starts a radiation burst and full flare excitation
	// Trigger: UI hazard button | Payload: nil
	TriggerFlare

	// TriggerAvalanche launches the avalanche sweep front
	// Trigger: UI hazard button | Payload: nil
	TriggerAvalanche

	// SetViewMode overrides the projection
	// Trigger: UI projection toggle | Payload: timeline.ViewMode
	SetViewMode

	// SetRandomPotential switches the static landscape between quasiperiodic and incoherent
	// Trigger: UI comparison toggle | Payload: bool
	SetRandomPotential

	// SetAutoAdvance enables or disables automatic timeline advancement
	// Trigger: UI | Payload: bool
	SetAutoAdvance

	// SnapToPhi sets omega exactly to the golden ratio
	// Trigger: UI resonance button | Payload: nil
	SnapToPhi
)

var typeNames = map[Type]string{
	SetParameter:       "set-parameter",
	SetProgress:        "set-progress",
	TriggerFlare:       "trigger-flare",
	TriggerAvalanche:   "trigger-avalanche",
	SetViewMode:        "set-view-mode",
	SetRandomPotential: "set-random-potential",
	SetAutoAdvance:     "set-automatic-advancement",
	SnapToPhi:          "snap-to-phi",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Command is one discrete external mutation, applied atomically between ticks
type Command struct {
	Type    Type
	Payload any
}
