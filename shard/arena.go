package shard

import (
	"fmt"

	"github.com/lixenwraith/golden-sieve/lattice"
	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/vmath"
)

// Particle is one shard's kinetic state
// InitialOffset is assigned at construction and never written again
type Particle struct {
	Position      vmath.Vec3F
	Velocity      vmath.Vec3F
	InitialOffset vmath.Vec3F
}

// Arena holds the fixed shard population and per-site forge factors in flat arrays
// Shard idx belongs to site idx / ShardsPerSite; no per-tick allocation
type Arena struct {
	particles [parameter.ShardCount]Particle
	forge     [parameter.SiteCount]float64
}

// NewArena draws every initial offset from the cube of half-width ShardOffsetHalfWidth
// and parks each shard at its progress-0 target without extrusion
func NewArena(sites []lattice.Site, src vmath.Source) (*Arena, error) {
	if len(sites) != parameter.SiteCount {
		return nil, fmt.Errorf("arena needs %d sites, got %d", parameter.SiteCount, len(sites))
	}
	a := &Arena{}
	for idx := range a.particles {
		p := &a.particles[idx]
		p.InitialOffset = vmath.V3FRandomCube(src, parameter.ShardOffsetHalfWidth)
		site := &sites[SiteOf(idx)]
		p.Position = vmath.Vec3F{
			X: site.X + p.InitialOffset.X,
			Y: site.Y + p.InitialOffset.Y,
			Z: parameter.SieveBaseZ + parameter.SieveSafetyBuffer + p.InitialOffset.Z,
		}
	}
	return a, nil
}

// Index returns the arena index of a site's local shard
func Index(siteID, local int) int {
	return siteID*parameter.ShardsPerSite + local
}

// SiteOf returns the parent site id of a shard index
func SiteOf(idx int) int {
	return idx / parameter.ShardsPerSite
}

// Len is the fixed population
func (a *Arena) Len() int { return len(a.particles) }

// Particle returns a copy of one shard's state
func (a *Arena) Particle(idx int) Particle { return a.particles[idx] }

// ForgeFactor returns the last computed forge factor of a site
func (a *Arena) ForgeFactor(siteID int) float64 { return a.forge[siteID] }

// CopyParticles copies the population into dst, growing it only when short
func (a *Arena) CopyParticles(dst []Particle) []Particle {
	if cap(dst) < len(a.particles) {
		dst = make([]Particle, len(a.particles))
	}
	dst = dst[:len(a.particles)]
	copy(dst, a.particles[:])
	return dst
}

// CopyForge copies the per-site forge factors into dst, growing it only when short
func (a *Arena) CopyForge(dst []float64) []float64 {
	if cap(dst) < len(a.forge) {
		dst = make([]float64, len(a.forge))
	}
	dst = dst[:len(a.forge)]
	copy(dst, a.forge[:])
	return dst
}
