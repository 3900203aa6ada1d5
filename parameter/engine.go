package parameter

import "time"

// Simulation Loop & Engine Timing
const (
	// TickInterval is the fixed timeline/lattice update interval (~62.5 Hz)
	TickInterval = 16 * time.Millisecond

	// FrameInterval is the render-synchronized shard integration interval (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// SimTimeScale converts clock seconds into simulation time units (0.04 per 16ms frame)
	SimTimeScale = 2.5

	// MaxFrameDelta caps the elapsed time a single frame may integrate after a stall
	MaxFrameDelta = 250 * time.Millisecond

	// StatsEveryTicks is the default statistics cadence in ticks
	StatsEveryTicks = 30

	// MetricsEveryTicks is the cadence of aggregate metric publication
	MetricsEveryTicks = 20
)

// Command Queue Limits
const (
	// CommandQueueSize is the fixed capacity of the inbound command ring buffer
	CommandQueueSize = 256

	// CommandBufferMask is the bitmask for fast modulo operations (256 - 1)
	CommandBufferMask = 255
)
