package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// ErrTickPanic reports a programming-contract violation recovered inside a tick
var ErrTickPanic = errors.New("tick panicked")

// TickFunc runs one fixed simulation step
type TickFunc func() error

// ClockScheduler drives a TickFunc on a fixed interval of pausable clock time
// Deadlines advance by whole intervals so long runs do not drift; a driver that
// falls more than two intervals behind resynchronizes instead of bursting
type ClockScheduler struct {
	clock        *PausableClock
	tickInterval time.Duration
	tick         TickFunc

	nextTickDeadline time.Time
	tickCount        atomic.Uint64
	running          atomic.Bool

	// onTick is signalled without blocking after every tick
	onTick chan struct{}
}

// NewClockScheduler creates a scheduler; it does nothing until Run
func NewClockScheduler(clock *PausableClock, tickInterval time.Duration, tick TickFunc) *ClockScheduler {
	return &ClockScheduler{
		clock:        clock,
		tickInterval: tickInterval,
		tick:         tick,
		onTick:       make(chan struct{}, 1),
	}
}

// TickCount returns the number of completed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Ticked exposes the per-tick notification channel
func (cs *ClockScheduler) Ticked() <-chan struct{} {
	return cs.onTick
}

// Run executes the scheduling loop until ctx is done or a tick fails
// Returns nil on cancellation; a tick in progress always completes first
func (cs *ClockScheduler) Run(ctx context.Context) error {
	if !cs.running.CompareAndSwap(false, true) {
		return errors.New("clock scheduler already running")
	}
	defer cs.running.Store(false)

	cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}

		var sleepDuration time.Duration

		if cs.clock.IsPaused() {
			// Longer sleep while paused to save CPU
			sleepDuration = cs.tickInterval * 2
			cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)
		} else {
			now := cs.clock.Now()
			if !now.Before(cs.nextTickDeadline) {
				if err := cs.safeTick(); err != nil {
					return err
				}
				cs.tickCount.Add(1)

				cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
				if now.Sub(cs.nextTickDeadline) > cs.tickInterval*2 {
					cs.nextTickDeadline = now.Add(cs.tickInterval)
				}

				select {
				case cs.onTick <- struct{}{}:
				default:
				}

				sleepDuration = cs.nextTickDeadline.Sub(cs.clock.Now())
			} else {
				sleepDuration = cs.nextTickDeadline.Sub(now)
			}
		}

		if sleepDuration <= 0 {
			continue
		}
		timer.Reset(sleepDuration)
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil
		}
	}
}

// safeTick converts a panic into ErrTickPanic carrying the stack
func (cs *ClockScheduler) safeTick() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\n%s", ErrTickPanic, r, debug.Stack())
		}
	}()
	return cs.tick()
}
