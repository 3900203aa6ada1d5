package engine

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/golden-sieve/command"
	"github.com/lixenwraith/golden-sieve/config"
	"github.com/lixenwraith/golden-sieve/control"
	"github.com/lixenwraith/golden-sieve/lattice"
	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/shard"
	"github.com/lixenwraith/golden-sieve/stats"
	"github.com/lixenwraith/golden-sieve/status"
	"github.com/lixenwraith/golden-sieve/timeline"
	"github.com/lixenwraith/golden-sieve/vmath"
)

// ErrSiteContract reports a lattice population that no longer matches the grid
var ErrSiteContract = errors.New("site population contract violated")

// Simulation owns the lattice, the shard arena and the control state
// Tick and Frame run on separate goroutines; everything else is safe from any goroutine
type Simulation struct {
	log   *zap.Logger
	runID uuid.UUID

	tickCfg       control.TickConfig
	frameInterval time.Duration
	statsEvery    uint64

	queue    *command.Queue
	cell     *control.Cell
	clock    *PausableClock
	reg      *status.Registry
	handlers []Handler
	snapshot atomic.Pointer[Snapshot]

	// Tick-owned
	state     control.State
	sites     []lattice.Site
	history   *stats.History
	samples   []stats.MSDSample
	histogram []float64
	tickRng   *vmath.FastRand
	pending   []command.Command
	tick      uint64

	// Frame-owned, shardMu guards arena reads from other goroutines
	shardMu   sync.RWMutex
	arena     *shard.Arena
	frameRng  *vmath.FastRand
	frameTime float64
	frames    uint64

	m metrics
}

// metrics caches registry pointers so the hot loops skip map lookups
type metrics struct {
	ticks, frames, version, commands, rejected *atomic.Int64
	paused, heating, audio                     *atomic.Bool
	progress, detuning, resilience, pausedSec  *status.AtomicFloat
	meanAmp, maxAmp, xi, ipr, msd              *status.AtomicFloat
	maxSpeed, meanForge                        *status.AtomicFloat
	phase, condition, grade                    *status.AtomicString
}

func newMetrics(r *status.Registry) metrics {
	return metrics{
		ticks:      r.Ints.Get(status.KeyTicks),
		frames:     r.Ints.Get(status.KeyFrames),
		version:    r.Ints.Get(status.KeyVersion),
		commands:   r.Ints.Get(status.KeyCommands),
		rejected:   r.Ints.Get(status.KeyRejected),
		paused:     r.Bools.Get(status.KeyPaused),
		heating:    r.Bools.Get(status.KeyHeating),
		audio:      r.Bools.Get(status.KeyAudioAvailable),
		progress:   r.Floats.Get(status.KeyProgress),
		detuning:   r.Floats.Get(status.KeyDetuning),
		resilience: r.Floats.Get(status.KeyResilience),
		pausedSec:  r.Floats.Get(status.KeyPausedSeconds),
		meanAmp:    r.Floats.Get(status.KeyMeanAmplitude),
		maxAmp:     r.Floats.Get(status.KeyMaxAmplitude),
		xi:         r.Floats.Get(status.KeyLocalization),
		ipr:        r.Floats.Get(status.KeyParticipation),
		msd:        r.Floats.Get(status.KeyMSD),
		maxSpeed:   r.Floats.Get(status.KeyMaxShardSpeed),
		meanForge:  r.Floats.Get(status.KeyMeanForge),
		phase:      r.Strings.Get(status.KeyPhase),
		condition:  r.Strings.Get(status.KeyCondition),
		grade:      r.Strings.Get(status.KeyGrade),
	}
}

// Option customizes a Simulation
type Option func(*Simulation)

// WithTimeProvider replaces the monotonic clock source, used by tests
func WithTimeProvider(tp TimeProvider) Option {
	return func(s *Simulation) { s.clock = NewPausableClock(tp) }
}

// WithRegistry publishes metrics into an existing registry
func WithRegistry(r *status.Registry) Option {
	return func(s *Simulation) { s.reg = r }
}

// WithHandler subscribes h to simulation events
func WithHandler(h Handler) Option {
	return func(s *Simulation) { s.handlers = append(s.handlers, h) }
}

// New builds a simulation at tick 0 from a validated configuration
// Simulation parameters pass through the command boundary and are clamped
func New(cfg *config.Config, log *zap.Logger, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	root := vmath.NewFastRand(seed)

	s := &Simulation{
		runID: uuid.New(),
		tickCfg: control.TickConfig{
			Interval:      cfg.Engine.TickInterval,
			BurstDuration: parameter.BurstDuration,
		},
		frameInterval: cfg.Engine.FrameInterval,
		statsEvery:    uint64(cfg.Engine.StatsEveryTicks),
		queue:         command.NewQueue(),
		history:       stats.NewHistory(cfg.Engine.MSDHistoryLength),
		tickRng:       root.Split(),
		frameRng:      root.Split(),
		pending:       make([]command.Command, 0, parameter.CommandQueueSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = NewPausableClock(nil)
	}
	if s.reg == nil {
		s.reg = status.NewRegistry()
	}
	s.log = log.With(zap.String("run_id", s.runID.String()))
	s.m = newMetrics(s.reg)

	state, err := initialState(cfg.Simulation, s.tickCfg)
	if err != nil {
		return nil, err
	}
	s.state = state
	s.cell = control.NewCell(state)
	s.sites = lattice.Generate(state.PotentialDepth, state.RandomPotential, s.tickRng)
	s.histogram = stats.LevelSpacingHistogram(state.Regime().Heating, s.tickRng)

	arena, err := shard.NewArena(s.sites, s.frameRng)
	if err != nil {
		return nil, fmt.Errorf("failed to build shard arena: %w", err)
	}
	s.arena = arena

	s.publish(1)
	return s, nil
}

// initialState routes configured values through the same clamps as live commands
func initialState(sim config.SimulationConfig, cfg control.TickConfig) (control.State, error) {
	s := control.Initial()
	cmds := []command.Command{
		command.NewSetParameter(sim.InteractionU, sim.PotentialDepth, sim.TimingJitter, sim.DriveOmega),
		command.NewSetRandomPotential(sim.RandomPotential),
		command.NewSetAutoAdvance(sim.AutoAdvance),
	}
	if view, ok := sim.View(); ok {
		cmds = append(cmds, command.NewSetViewMode(view))
	}
	for _, cmd := range cmds {
		next, err := control.Apply(s, cmd, cfg)
		if err != nil {
			return s, fmt.Errorf("failed to apply initial %s: %w", cmd.Type, err)
		}
		s = next
	}
	return s, nil
}

// RunID identifies this simulation in logs and snapshots
func (s *Simulation) RunID() uuid.UUID { return s.runID }

// Registry returns the metric registry
func (s *Simulation) Registry() *status.Registry { return s.reg }

// Snapshot returns the latest published view
func (s *Simulation) Snapshot() *Snapshot { return s.snapshot.Load() }

// Control returns the latest published control state and its version
func (s *Simulation) Control() control.Published { return s.cell.Load() }

// Submit enqueues an external command; it is applied at the start of the next tick
func (s *Simulation) Submit(cmd command.Command) {
	s.queue.Push(cmd)
}

// SubmitConfig turns a reloaded configuration into parameter commands
func (s *Simulation) SubmitConfig(sim config.SimulationConfig) {
	s.Submit(command.NewSetParameter(sim.InteractionU, sim.PotentialDepth, sim.TimingJitter, sim.DriveOmega))
	s.Submit(command.NewSetRandomPotential(sim.RandomPotential))
	if view, ok := sim.View(); ok {
		s.Submit(command.NewSetViewMode(view))
	}
}

// Pause freezes both drivers
func (s *Simulation) Pause() {
	s.clock.Pause()
	s.m.paused.Store(true)
	s.m.pausedSec.Set(s.clock.TotalPauseDuration().Seconds())
	s.log.Info("simulation paused")
}

// Resume restarts both drivers
func (s *Simulation) Resume() {
	s.clock.Resume()
	s.m.paused.Store(false)
	s.m.pausedSec.Set(s.clock.TotalPauseDuration().Seconds())
	s.log.Info("simulation resumed")
}

// IsPaused reports the pause state
func (s *Simulation) IsPaused() bool { return s.clock.IsPaused() }

// CopyShards copies the shard population into dst, growing it only when short
func (s *Simulation) CopyShards(dst []shard.Particle) []shard.Particle {
	s.shardMu.RLock()
	defer s.shardMu.RUnlock()
	return s.arena.CopyParticles(dst)
}

// CopyForge copies the per-site forge factors into dst
func (s *Simulation) CopyForge(dst []float64) []float64 {
	s.shardMu.RLock()
	defer s.shardMu.RUnlock()
	return s.arena.CopyForge(dst)
}

// SetAudioAvailable records whether cues can be played
func (s *Simulation) SetAudioAvailable(ok bool) { s.m.audio.Store(ok) }

// Tick runs one fixed step: drain commands, advance timeline and lattice,
// sample statistics on cadence, then publish one consistent snapshot
func (s *Simulation) Tick() error {
	prev := s.state
	var events []Event

	// Tick is the only writer, so this tick publishes exactly one version past the current
	resultVersion := s.cell.Load().Version + 1

	s.pending = s.queue.Consume(s.pending[:0])
	for _, cmd := range s.pending {
		next, err := control.Apply(s.state, cmd, s.tickCfg)
		if err != nil {
			s.m.rejected.Add(1)
			s.log.Warn("command rejected", zap.Error(err))
			continue
		}
		s.state = next
		s.m.commands.Add(1)
		s.log.Debug("command applied",
			zap.Stringer("type", cmd.Type),
			zap.Uint64("version", resultVersion),
			zap.Float64("progress", next.Progress),
			zap.Bool("auto", next.AutoAdvance))

		switch cmd.Type {
		case command.TriggerFlare:
			events = append(events, Event{Type: EventFlare})
		case command.TriggerAvalanche:
			events = append(events, Event{Type: EventAvalanche})
		}
	}

	if s.state.RandomPotential != prev.RandomPotential || s.state.PotentialDepth != prev.PotentialDepth {
		s.sites = lattice.Regenerate(s.sites, s.state.PotentialDepth, s.state.RandomPotential, s.tickRng)
		s.log.Info("lattice regenerated",
			zap.Float64("potential_depth", s.state.PotentialDepth),
			zap.Bool("random", s.state.RandomPotential))
		events = append(events, Event{Type: EventRegenerated})
	}

	s.state = s.state.Tick(s.tickCfg)
	s.tick++
	simTime := s.simTime()

	s.sites = lattice.Advance(s.sites, s.state, simTime, s.tickRng)
	if len(s.sites) != parameter.SiteCount {
		return fmt.Errorf("%w: %d sites", ErrSiteContract, len(s.sites))
	}

	regime := s.state.Regime()
	if s.tick == 1 || s.tick%s.statsEvery == 0 {
		sample := stats.Sample(simTime, s.state.InteractionU, s.state.TimingJitter, s.state.DriveOmega, s.tickRng)
		s.history.Push(sample)
		s.samples = s.history.Snapshot()
		s.histogram = stats.LevelSpacingHistogram(regime.Heating, s.tickRng)
		s.m.msd.Set(sample.TheoreticalValue)
		s.log.Debug("stats sampled",
			zap.Float64("time", simTime),
			zap.Float64("msd", sample.TheoreticalValue),
			zap.Bool("heating", regime.Heating))
	}

	if s.state.Phase != prev.Phase {
		s.log.Info("phase transition",
			zap.Stringer("from", prev.Phase),
			zap.Stringer("to", s.state.Phase),
			zap.Float64("progress", s.state.Progress))
		events = append(events, Event{Type: EventPhaseChanged, From: prev.Phase, To: s.state.Phase})
	}
	if prevHeating := prev.Regime().Heating; prevHeating != regime.Heating {
		s.log.Info("heating regime changed",
			zap.Bool("heating", regime.Heating),
			zap.Float64("jitter", s.state.TimingJitter),
			zap.Float64("detuning", regime.Detuning))
		events = append(events, Event{Type: EventHeatingChanged, Heating: regime.Heating})
	}

	version := s.cell.Store(s.state)
	snap := s.publish(version)

	if s.tick%parameter.MetricsEveryTicks == 0 {
		s.updateMetrics(snap)
	}
	s.m.ticks.Store(int64(s.tick))

	for _, ev := range events {
		ev.Tick = s.tick
		s.emit(ev)
	}
	return nil
}

// Frame integrates the shard arena against the latest snapshot for dt of clock time
func (s *Simulation) Frame(dt time.Duration) error {
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	snap := s.snapshot.Load()

	s.shardMu.Lock()
	defer s.shardMu.Unlock()

	s.frameTime += dt.Seconds() * parameter.SimTimeScale
	if err := s.arena.Advance(snap.Sites, snap.State, s.frameTime, s.frameRng); err != nil {
		return fmt.Errorf("%w: %v", ErrSiteContract, err)
	}
	s.frames++
	s.m.frames.Store(int64(s.frames))

	if s.frames%parameter.MetricsEveryTicks == 0 {
		s.updateShardMetrics()
	}
	return nil
}

// Step runs n ticks each followed by one tick-length frame, without the clock
// Used by headless runs and tests for deterministic replay
func (s *Simulation) Step(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Tick(); err != nil {
			return err
		}
		if err := s.Frame(s.tickCfg.Interval); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) simTime() float64 {
	return float64(s.tick) * s.tickCfg.Interval.Seconds() * parameter.SimTimeScale
}

func (s *Simulation) publish(version uint64) *Snapshot {
	snap := &Snapshot{
		RunID:      s.runID,
		Version:    version,
		Tick:       s.tick,
		SimTime:    s.simTime(),
		State:      s.state,
		Regime:     s.state.Regime(),
		Resilience: s.state.Resilience(),
		Assessment: control.Assess(s.state),
		ShardScale: shard.Scale(s.state.Progress),
		Sites:      s.sites,
		Summary:    lattice.Summarize(s.sites),
		History:    s.samples,
		Histogram:  s.histogram,
	}
	s.snapshot.Store(snap)
	return snap
}

func (s *Simulation) emit(ev Event) {
	for _, h := range s.handlers {
		h.HandleEvent(ev)
	}
}

func (s *Simulation) updateMetrics(snap *Snapshot) {
	s.m.version.Store(int64(snap.Version))
	s.m.progress.Set(snap.State.Progress)
	s.m.phase.Store(snap.State.Phase.String())
	s.m.heating.Store(snap.Regime.Heating)
	s.m.detuning.Set(snap.Regime.Detuning)
	s.m.resilience.Set(snap.Resilience)
	s.m.meanAmp.Set(snap.Summary.MeanAmplitude)
	s.m.maxAmp.Set(snap.Summary.MaxAmplitude)
	s.m.xi.Set(snap.Summary.MeanLocalization)
	s.m.ipr.Set(snap.Summary.MeanParticipation)
	s.m.condition.Store(snap.Assessment.Condition.String())
	s.m.grade.Store(snap.Assessment.Grade.String())
}

// updateShardMetrics runs under shardMu
func (s *Simulation) updateShardMetrics() {
	var maxSq float64
	for i := 0; i < s.arena.Len(); i++ {
		p := s.arena.Particle(i)
		if v := vmath.V3FMagSq(p.Velocity); v > maxSq {
			maxSq = v
		}
	}
	var forge float64
	for sid := 0; sid < parameter.SiteCount; sid++ {
		forge += s.arena.ForgeFactor(sid)
	}
	s.m.maxSpeed.Set(math.Sqrt(maxSq))
	s.m.meanForge.Set(forge / parameter.SiteCount)
}

// Phase reports the latest published mission phase
func (s *Simulation) Phase() timeline.Phase {
	return s.snapshot.Load().State.Phase
}
