package engine

import (
	"sync/atomic"
	"time"
)

// ManualTimeProvider is a time source that only moves when told to
// Used to step the pausable clock deterministically in tests and replays
type ManualTimeProvider struct {
	start  time.Time
	offset atomic.Int64 // nanoseconds since start
}

// NewManualTimeProvider creates a provider frozen at start
func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{start: start}
}

func (m *ManualTimeProvider) Now() time.Time {
	return m.start.Add(time.Duration(m.offset.Load()))
}

// Advance moves time forward by d; negative durations are ignored
func (m *ManualTimeProvider) Advance(d time.Duration) {
	if d > 0 {
		m.offset.Add(int64(d))
	}
}

// AdvanceTicks moves time forward by n whole tick intervals
func (m *ManualTimeProvider) AdvanceTicks(n int, interval time.Duration) {
	m.Advance(time.Duration(n) * interval)
}
