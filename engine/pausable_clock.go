package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides simulation time that freezes while paused
// Both periodic drivers read it, so pausing halts ticks and frames together
type PausableClock struct {
	mu sync.RWMutex

	source    TimeProvider
	realStart time.Time

	isPaused        atomic.Bool
	pauseStart      time.Time
	totalPausedTime time.Duration
}

// NewPausableClock creates a running clock over source; nil uses the monotonic clock
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		source:    source,
		realStart: source.Now(),
	}
}

// Now returns current simulation wall time
func (pc *PausableClock) Now() time.Time {
	return pc.realStart.Add(pc.Elapsed())
}

// Elapsed returns unpaused time since creation
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.pauseStart.Sub(pc.realStart) - pc.totalPausedTime
	}
	return pc.source.Now().Sub(pc.realStart) - pc.totalPausedTime
}

// Pause stops time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.pauseStart = pc.source.Now()
	}
}

// Resume continues time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStart)
		pc.pauseStart = time.Time{}
	}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() {
		total += pc.source.Now().Sub(pc.pauseStart)
	}
	return total
}
