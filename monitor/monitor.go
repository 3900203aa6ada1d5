// Package monitor is a read-only terminal view of a running simulation
// Its only write path is submitting commands
package monitor

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/golden-sieve/command"
	"github.com/lixenwraith/golden-sieve/engine"
	"github.com/lixenwraith/golden-sieve/shard"
)

// Source is the simulation surface the monitor reads and commands
type Source interface {
	Snapshot() *engine.Snapshot
	CopyShards(dst []shard.Particle) []shard.Particle
	CopyForge(dst []float64) []float64
	Submit(cmd command.Command)
	Pause()
	Resume()
	IsPaused() bool
}

// Monitor draws src on screen at a fixed refresh and maps keys to commands
type Monitor struct {
	screen  tcell.Screen
	src     Source
	refresh time.Duration

	particles []shard.Particle
	forge     []float64
}

// New creates a monitor over an initialized screen
func New(screen tcell.Screen, src Source, refresh time.Duration) *Monitor {
	if refresh <= 0 {
		refresh = 50 * time.Millisecond
	}
	return &Monitor{screen: screen, src: src, refresh: refresh}
}

// Run draws and handles input until quit or ctx is done
// The poll goroutine exits when the caller finalizes the screen
func (m *Monitor) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(m.refresh)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := m.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	m.Render()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if !m.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			m.Render()
		}
	}
}

// Render copies the latest state out of the source and draws it
func (m *Monitor) Render() {
	m.particles = m.src.CopyShards(m.particles)
	m.forge = m.src.CopyForge(m.forge)
	Draw(m.screen, Frame{
		Snapshot:  m.src.Snapshot(),
		Forge:     m.forge,
		Particles: m.particles,
		Paused:    m.src.IsPaused(),
	})
}

// HandleEvent applies one terminal event; false means quit
func (m *Monitor) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		snap := m.src.Snapshot()
		if snap == nil {
			return true
		}
		cmd, action := MapKey(ev, snap.State)
		switch action {
		case ActionQuit:
			return false
		case ActionPause:
			if m.src.IsPaused() {
				m.src.Resume()
			} else {
				m.src.Pause()
			}
		case ActionCommand:
			m.src.Submit(cmd)
		}

	case *tcell.EventResize:
		m.screen.Sync()
	}
	return true
}
