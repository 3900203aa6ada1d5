package stats

import (
	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/vmath"
)

// MSDSample is one point of the diffusion-law chart
type MSDSample struct {
	Time             float64
	MeasuredValue    float64
	TheoreticalValue float64
}

// Sample evaluates the law at simulation time and perturbs the measured value by
// a relative uniform error of MSDMeasurementNoise
func Sample(time, interactionU, jitter, driveOmega float64, src vmath.Source) MSDSample {
	law := MeanSquaredDisplacement(time, interactionU, jitter, driveOmega)
	noise := 2 * vmath.Centered(src) * parameter.MSDMeasurementNoise
	return MSDSample{
		Time:             time,
		MeasuredValue:    law * (1 + noise),
		TheoreticalValue: law,
	}
}

// History is a bounded append-only ring of samples, oldest evicted first
// Not safe for concurrent use; the owner publishes copies
type History struct {
	buf   []MSDSample
	start int
	count int
}

// NewHistory creates a window of the given capacity (minimum 1)
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]MSDSample, capacity)}
}

// Push appends a sample, evicting the oldest at capacity
func (h *History) Push(s MSDSample) {
	if h.count < len(h.buf) {
		h.buf[(h.start+h.count)%len(h.buf)] = s
		h.count++
		return
	}
	h.buf[h.start] = s
	h.start = (h.start + 1) % len(h.buf)
}

func (h *History) Len() int { return h.count }

func (h *History) Cap() int { return len(h.buf) }

// Snapshot returns the samples oldest first in a new slice
func (h *History) Snapshot() []MSDSample {
	out := make([]MSDSample, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Reset empties the window
func (h *History) Reset() {
	h.start, h.count = 0, 0
}
