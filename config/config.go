package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/timeline"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config holds all golden-sieve configuration
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Engine     EngineConfig     `yaml:"engine"`
	Logging    LoggingConfig    `yaml:"logging"`
	Audio      AudioConfig      `yaml:"audio"`
	Monitor    MonitorConfig    `yaml:"monitor"`
}

// SimulationConfig seeds the initial control state
// Values outside their domains are clamped when applied, not rejected
type SimulationConfig struct {
	InteractionU    float64 `yaml:"interaction_u"`
	PotentialDepth  float64 `yaml:"potential_depth"`
	TimingJitter    float64 `yaml:"timing_jitter"`
	DriveOmega      float64 `yaml:"drive_omega"`
	RandomPotential bool    `yaml:"random_potential"`
	AutoAdvance     bool    `yaml:"auto_advance"`
	ViewMode        string  `yaml:"view_mode"` // NORMAL or FOUR_D; empty follows the phase table
	Seed            uint64  `yaml:"seed"`      // 0 = time-based
}

// View returns the configured projection override, false when none is set
func (s SimulationConfig) View() (timeline.ViewMode, bool) {
	if s.ViewMode == "" {
		return timeline.ViewNormal, false
	}
	return timeline.ParseViewMode(s.ViewMode)
}

// EngineConfig configures the two periodic drivers and statistics cadence
type EngineConfig struct {
	TickInterval     time.Duration `yaml:"tick_interval"`
	FrameInterval    time.Duration `yaml:"frame_interval"`
	StatsEveryTicks  int           `yaml:"stats_every_ticks"`
	MSDHistoryLength int           `yaml:"msd_history_length"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	File        string `yaml:"file"`  // empty = stderr
	Development bool   `yaml:"development"`
}

// AudioConfig configures phase-transition cues
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // [0,1]
}

// MonitorConfig configures the terminal monitor
type MonitorConfig struct {
	Refresh time.Duration `yaml:"refresh"`
}

// Default returns the cold-boot configuration
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			InteractionU:   parameter.InitialInteraction,
			PotentialDepth: parameter.InitialPotential,
			TimingJitter:   parameter.InitialJitter,
			DriveOmega:     parameter.Phi,
			AutoAdvance:    true,
		},
		Engine: EngineConfig{
			TickInterval:     parameter.TickInterval,
			FrameInterval:    parameter.FrameInterval,
			StatsEveryTicks:  parameter.StatsEveryTicks,
			MSDHistoryLength: parameter.MSDHistoryLen,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.5,
		},
		Monitor: MonitorConfig{
			Refresh: 50 * time.Millisecond,
		},
	}
}

// Load reads a YAML file over the defaults; a missing file yields the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects structural settings the engine cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Engine.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval must be positive, got %v", ErrInvalid, c.Engine.TickInterval)
	case c.Engine.FrameInterval <= 0:
		return fmt.Errorf("%w: frame_interval must be positive, got %v", ErrInvalid, c.Engine.FrameInterval)
	case c.Engine.StatsEveryTicks <= 0:
		return fmt.Errorf("%w: stats_every_ticks must be positive, got %d", ErrInvalid, c.Engine.StatsEveryTicks)
	case c.Engine.MSDHistoryLength <= 0:
		return fmt.Errorf("%w: msd_history_length must be positive, got %d", ErrInvalid, c.Engine.MSDHistoryLength)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio volume %v outside [0,1]", ErrInvalid, c.Audio.Volume)
	case c.Simulation.ViewMode != "" && !validView(c.Simulation.ViewMode):
		return fmt.Errorf("%w: unknown view_mode %q", ErrInvalid, c.Simulation.ViewMode)
	case c.Monitor.Refresh < 0:
		return fmt.Errorf("%w: monitor refresh must not be negative", ErrInvalid)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}

func validView(name string) bool {
	_, ok := timeline.ParseViewMode(name)
	return ok
}
