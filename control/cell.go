package control

import "sync/atomic"

// Published is one immutable state with its monotonically increasing version
type Published struct {
	State   State
	Version uint64
}

// Cell is a single-writer multi-reader versioned holder for the control state
// Readers always observe a whole State; the writer replaces it wholesale
type Cell struct {
	p atomic.Pointer[Published]
}

// NewCell publishes s as version 1
func NewCell(s State) *Cell {
	c := &Cell{}
	c.p.Store(&Published{State: s, Version: 1})
	return c
}

// Load returns the latest publication
func (c *Cell) Load() Published {
	return *c.p.Load()
}

// Store publishes s and returns its version; only the owning goroutine may call it
func (c *Cell) Store(s State) uint64 {
	v := c.p.Load().Version + 1
	c.p.Store(&Published{State: s, Version: v})
	return v
}
