package status

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// Metric keys published by the engine
const (
	KeyTicks          = "engine.ticks"
	KeyFrames         = "engine.frames"
	KeyVersion        = "engine.version"
	KeyCommands       = "engine.commands"
	KeyRejected       = "engine.commands_rejected"
	KeyPaused         = "engine.paused"
	KeyPausedSeconds  = "engine.paused_seconds"
	KeyProgress       = "timeline.progress"
	KeyPhase          = "timeline.phase"
	KeyHeating        = "physics.heating"
	KeyDetuning       = "physics.detuning"
	KeyResilience     = "physics.resilience"
	KeyMeanAmplitude  = "lattice.mean_amplitude"
	KeyMaxAmplitude   = "lattice.max_amplitude"
	KeyLocalization   = "lattice.localization_length"
	KeyParticipation  = "lattice.participation_ratio"
	KeyMSD            = "stats.msd"
	KeyCondition      = "status.condition"
	KeyGrade          = "status.grade"
	KeyMaxShardSpeed  = "shard.max_speed"
	KeyMeanForge      = "shard.mean_forge"
	KeyAudioAvailable = "audio.available"
)

// Registry is the central metrics facade
// The engine caches pointers at construction; tick and frame loops write atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Entry is one formatted metric
type Entry struct {
	Key   string
	Value string
}

// Snapshot formats every metric, sorted by key, for HUDs and headless reports
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out = append(out, Entry{k, strconv.FormatBool(v.Load())})
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, Entry{k, strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out = append(out, Entry{k, strconv.FormatFloat(v.Get(), 'f', 4, 64)})
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		out = append(out, Entry{k, v.Load()})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
