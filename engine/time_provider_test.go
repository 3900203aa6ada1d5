package engine

import (
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}
	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestManualTimeProvider(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	manual := NewManualTimeProvider(startTime)

	if now := manual.Now(); !now.Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, now)
	}

	manual.Advance(1 * time.Hour)
	manual.Advance(-time.Hour)
	manual.AdvanceTicks(3, 10*time.Minute)

	expected := startTime.Add(90 * time.Minute)
	if now := manual.Now(); !now.Equal(expected) {
		t.Errorf("Expected time to be %v after advances, got %v", expected, now)
	}
}

func TestPausableClockFreezesWhilePaused(t *testing.T) {
	mock := NewManualTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	clock := NewPausableClock(mock)

	mock.Advance(100 * time.Millisecond)
	if got := clock.Elapsed(); got != 100*time.Millisecond {
		t.Fatalf("Elapsed() = %v, want 100ms", got)
	}

	clock.Pause()
	clock.Pause() // idempotent
	mock.Advance(time.Second)
	if got := clock.Elapsed(); got != 100*time.Millisecond {
		t.Errorf("Elapsed() while paused = %v, want 100ms", got)
	}
	if got := clock.TotalPauseDuration(); got != time.Second {
		t.Errorf("TotalPauseDuration() = %v, want 1s", got)
	}

	clock.Resume()
	mock.Advance(50 * time.Millisecond)
	if got := clock.Elapsed(); got != 150*time.Millisecond {
		t.Errorf("Elapsed() after resume = %v, want 150ms", got)
	}
	if clock.IsPaused() {
		t.Error("clock still paused after Resume")
	}
}

func TestTimeProviderInterface(t *testing.T) {
	var _ TimeProvider = &MonotonicTimeProvider{}
	var _ TimeProvider = &ManualTimeProvider{}
}
