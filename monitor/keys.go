package monitor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/golden-sieve/command"
	"github.com/lixenwraith/golden-sieve/control"
	"github.com/lixenwraith/golden-sieve/timeline"
)

// Action is what a key asks the monitor loop to do
type Action uint8

const (
	ActionNone Action = iota
	ActionCommand
	ActionPause
	ActionQuit
)

// Slider steps per key press
const (
	stepInteraction = 0.5
	stepPotential   = 0.5
	stepJitter      = 5.0
	stepOmega       = 0.005
)

// KeyHelp is the one-line legend drawn under the HUD
const KeyHelp = "f flare  a avalanche  v view  r random  p auto  g snap  u/U d/D j/J o/O  0-9 progress  space pause  q quit"

// MapKey translates a key press into a command against the current state
// Slider keys resend all four parameters with one changed; the command boundary clamps them
func MapKey(ev *tcell.EventKey, st control.State) (command.Command, Action) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return command.Command{}, ActionQuit
	case tcell.KeyRune:
	default:
		return command.Command{}, ActionNone
	}

	u, v0, j, w := st.InteractionU, st.PotentialDepth, st.TimingJitter, st.DriveOmega
	param := func() (command.Command, Action) {
		return command.NewSetParameter(u, v0, j, w), ActionCommand
	}

	switch r := ev.Rune(); r {
	case 'q':
		return command.Command{}, ActionQuit
	case ' ':
		return command.Command{}, ActionPause
	case 'f':
		return command.NewTriggerFlare(), ActionCommand
	case 'a':
		return command.NewTriggerAvalanche(), ActionCommand
	case 'v':
		next := timeline.ViewFourD
		if st.ViewMode == timeline.ViewFourD {
			next = timeline.ViewNormal
		}
		return command.NewSetViewMode(next), ActionCommand
	case 'r':
		return command.NewSetRandomPotential(!st.RandomPotential), ActionCommand
	case 'p':
		return command.NewSetAutoAdvance(!st.AutoAdvance), ActionCommand
	case 'g':
		return command.NewSnapToPhi(), ActionCommand
	case 'u':
		u -= stepInteraction
		return param()
	case 'U':
		u += stepInteraction
		return param()
	case 'd':
		v0 -= stepPotential
		return param()
	case 'D':
		v0 += stepPotential
		return param()
	case 'j':
		j -= stepJitter
		return param()
	case 'J':
		j += stepJitter
		return param()
	case 'o':
		w -= stepOmega
		return param()
	case 'O':
		w += stepOmega
		return param()
	default:
		if r >= '0' && r <= '9' {
			return command.NewSetProgress(float64(r-'0') / 9), ActionCommand
		}
	}
	return command.Command{}, ActionNone
}
