package engine

import (
	"github.com/lixenwraith/golden-sieve/timeline"
)

// EventType identifies a simulation notification
type EventType uint8

const (
	EventPhaseChanged EventType = iota + 1
	EventHeatingChanged
	EventFlare
	EventAvalanche
	EventRegenerated
)

var eventNames = [...]string{
	EventPhaseChanged:   "phase-changed",
	EventHeatingChanged: "heating-changed",
	EventFlare:          "flare",
	EventAvalanche:      "avalanche",
	EventRegenerated:    "lattice-regenerated",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) && eventNames[t] != "" {
		return eventNames[t]
	}
	return "unknown"
}

// Event is emitted on the tick goroutine after the new state is published
type Event struct {
	Type     EventType
	Tick     uint64
	From, To timeline.Phase // EventPhaseChanged
	Heating  bool           // EventHeatingChanged
}

// Handler receives events synchronously on the tick goroutine and must not block
type Handler interface {
	HandleEvent(Event)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(Event)

func (f HandlerFunc) HandleEvent(ev Event) { f(ev) }
