package shard

import (
	"fmt"
	"math"

	"github.com/lixenwraith/golden-sieve/control"
	"github.com/lixenwraith/golden-sieve/lattice"
	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/timeline"
	"github.com/lixenwraith/golden-sieve/vmath"
)

// Forces are the per-frame values shared by every shard
type Forces struct {
	Progress   float64
	Resilience float64
	SnapSpeed  float64
	Spread     float64 // 1 - progress, multiplier on the initial offset
	SieveZ     float64 // sieve base plane height for this progress
	Extrude    bool
	Locked     bool // exact snap when undisturbed
}

// DeriveForces evaluates the snapshot-wide integrator terms once per frame
func DeriveForces(c control.State) Forces {
	r := c.Resilience()
	return Forces{
		Progress:   c.Progress,
		Resilience: r,
		SnapSpeed:  (parameter.SnapSpeedBase + parameter.SnapSpeedProgress*c.Progress) * (parameter.SnapResilienceGain*r + parameter.SnapResilienceBias),
		Spread:     1 - c.Progress,
		SieveZ:     parameter.SieveBaseZ + parameter.SieveRiseZ*c.Progress,
		Extrude:    c.ViewMode == timeline.ViewFourD,
		Locked:     c.Progress > parameter.LockProgress && r > parameter.LockResilience,
	}
}

// ForgeFactor returns 1 at full progress, else clamp(1 - (site.x - sweepX)/ForgeWidth, 0, 1)
func ForgeFactor(site *lattice.Site, c control.State) float64 {
	if c.Progress >= parameter.ForgeCompleteAt {
		return 1.0
	}
	return vmath.Clamp(1-(site.X-c.SieveSweepX)/parameter.ForgeWidth, 0, 1)
}

// Agitation returns the stochastic drive on shards of a site
func Agitation(site *lattice.Site, c control.State) float64 {
	a := parameter.FlareAgitationGain * c.FlareExcitation
	switch {
	case math.Abs(site.X-c.AvalancheSweepX) < parameter.AvalancheRadius:
		a += parameter.AvalancheAgitation
	case c.TimingJitter > parameter.JitterThreshold:
		a += (c.TimingJitter - parameter.JitterThreshold) * parameter.JitterAgitationGain
	}
	return a
}

// TargetPosition is the point a shard converges toward: shrinking offset spread,
// per-site vertical term and, in the 4D view, a time-periodic extrusion
func TargetPosition(site *lattice.Site, p *Particle, idx int, c control.State, elapsed float64) vmath.Vec3F {
	return target(site, p, idx, DeriveForces(c), elapsed)
}

func target(site *lattice.Site, p *Particle, idx int, f Forces, elapsed float64) vmath.Vec3F {
	off := p.InitialOffset
	t := vmath.Vec3F{
		X: site.X + off.X*f.Spread,
		Y: site.Y + off.Y*f.Spread,
		Z: f.SieveZ + parameter.SieveSafetyBuffer + parameter.SiteHeightGain*site.Potential*f.Progress + off.Z*f.Spread,
	}
	if f.Extrude {
		local := idx % parameter.ShardsPerSite
		freq := parameter.ExtrusionBaseFreq + parameter.ExtrusionFreqStep*float64(local)
		t.Z += math.Sin(elapsed*freq+float64(idx)) * parameter.ExtrusionAmplitude
	}
	return t
}

// Scale returns the shard visual scale for a progress value
func Scale(progress float64) float64 {
	return 1 + parameter.ShardScaleGain*progress
}

// Advance integrates every shard in place for one frame against a consistent snapshot
// Two mutually exclusive regimes are selected per site by the agitation threshold
func (a *Arena) Advance(sites []lattice.Site, c control.State, elapsed float64, src vmath.Source) error {
	if len(sites) != parameter.SiteCount {
		return fmt.Errorf("advance needs %d sites, got %d", parameter.SiteCount, len(sites))
	}

	f := DeriveForces(c)
	restore := f.Resilience * parameter.RestoringGain
	noiseScale := 1 - f.Resilience + parameter.NoiseResilienceBias

	for sid := range sites {
		site := &sites[sid]
		a.forge[sid] = ForgeFactor(site, c)
		agitation := Agitation(site, c)

		base := sid * parameter.ShardsPerSite
		for idx := base; idx < base+parameter.ShardsPerSite; idx++ {
			p := &a.particles[idx]
			t := target(site, p, idx, f, elapsed)

			if agitation > parameter.AgitationThreshold {
				noise := agitation * noiseScale
				v := p.Velocity
				v.X += vmath.Centered(src) * noise
				v.Y += vmath.Centered(src) * noise
				v.Z += vmath.Centered(src) * noise
				v = vmath.V3FAdd(v, vmath.V3FScale(vmath.V3FSub(t, p.Position), restore))
				p.Velocity = vmath.V3FScale(v, parameter.VelocityDamping)
				p.Position = vmath.V3FAdd(p.Position, p.Velocity)
				continue
			}

			p.Velocity = vmath.Vec3F{}
			if f.Locked {
				p.Position = t
				continue
			}
			p.Position = vmath.V3FApproach(p.Position, t, f.SnapSpeed)
		}
	}
	return nil
}
