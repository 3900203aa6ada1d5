package vmath

// --- Scalar ---

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MapLinear remaps x from [a1, a2] to [b1, b2] without clamping
func MapLinear(x, a1, a2, b1, b2 float64) float64 {
	if a2 == a1 {
		return b1
	}
	return b1 + (x-a1)*(b2-b1)/(a2-a1)
}

// --- Randomness ---

// Source is the random draw boundary injected into integrators and statistics
// Implementations are not required to be safe for concurrent use
type Source interface {
	Float64() float64
}

// FastRand is a xorshift64 generator; one instance per driver goroutine
type FastRand struct {
	state uint64
}

// NewFastRand creates a generator, seed 0 is promoted to 1 (xorshift fixed point)
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a uniform value in [0, 1) from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Split derives an independent generator for another goroutine
func (r *FastRand) Split() *FastRand {
	return NewFastRand(r.Next() ^ 0x9e3779b97f4a7c15)
}

// Uniform returns a value in [lo, hi) drawn from src
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Centered returns a value in [-0.5, 0.5) drawn from src
func Centered(src Source) float64 {
	return src.Float64() - 0.5
}
