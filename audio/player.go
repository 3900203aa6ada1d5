package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/golden-sieve/config"
	"github.com/lixenwraith/golden-sieve/engine"
)

// Player turns simulation events into cues on the system speaker
// Until Start succeeds every event is dropped, so a missing audio device never stops a run
type Player struct {
	mu      sync.Mutex
	cfg     config.AudioConfig
	log     *zap.Logger
	mixer   *beep.Mixer
	started bool
	played  int
}

// NewPlayer creates an idle player
func NewPlayer(cfg config.AudioConfig, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{cfg: cfg, log: log, mixer: &beep.Mixer{}}
}

// Start opens the speaker; disabled config is a no-op
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled || p.started {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Available reports whether cues reach the speaker
func (p *Player) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Played returns the number of cues queued on the speaker
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// HandleEvent queues the cue for ev; it never blocks the tick
func (p *Player) HandleEvent(ev engine.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	s := CueFor(ev, p.cfg.Volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played++
	p.log.Debug("audio cue", zap.Stringer("event", ev.Type))
}

// Close stops playback and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}
