package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/golden-sieve/audio"
	"github.com/lixenwraith/golden-sieve/config"
	"github.com/lixenwraith/golden-sieve/engine"
	"github.com/lixenwraith/golden-sieve/logging"
	"github.com/lixenwraith/golden-sieve/monitor"
	"github.com/lixenwraith/golden-sieve/stats"
	"github.com/lixenwraith/golden-sieve/vmath"
)

// defaultLogFile receives interactive logs; the terminal belongs to the monitor
const defaultLogFile = "logs/golden-sieve.log"

var (
	configPath string
	logLevel   string
	verbose    bool
	watch      bool
	viewMode   string

	headlessTicks int

	statsTime    float64
	statsU       float64
	statsJitter  float64
	statsOmega   float64
	statsHeating bool
	statsSeed    uint64
)

var rootCmd = &cobra.Command{
	Use:   "golden-sieve",
	Short: "Quasiperiodic lattice localization simulation",
	Long: `golden-sieve drives a 24x24 quasiperiodic lattice through the mission
timeline: amorphous chaos, 4D extrusion, the golden sieving sweep and the
topological lock. Shards converge onto their sites as the lattice localizes.

Run without a subcommand to start the interactive monitor.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation with the terminal monitor",
	Long: `Starts the tick and frame drivers and the terminal monitor.

Keys:
  ` + monitor.KeyHelp,
	RunE: runInteractive,
}

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Step the simulation without a terminal and print metrics",
	RunE:  runHeadless,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Evaluate the MSD scaling law and level-spacing histogram",
	RunE:  runStats,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&viewMode, "view", "", "Initial projection override (NORMAL, FOUR_D)")

	runCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload simulation parameters when the config file changes")
	rootCmd.Flags().AddFlagSet(runCmd.Flags())

	headlessCmd.Flags().IntVarP(&headlessTicks, "ticks", "n", 600, "Number of fixed ticks to run")

	statsCmd.Flags().Float64Var(&statsTime, "time", 100, "Simulation time")
	statsCmd.Flags().Float64Var(&statsU, "u", 2.5, "Interaction strength U")
	statsCmd.Flags().Float64Var(&statsJitter, "jitter", 10, "Timing jitter (ps)")
	statsCmd.Flags().Float64Var(&statsOmega, "omega", 1.618033988749895, "Drive frequency")
	statsCmd.Flags().BoolVar(&statsHeating, "heating", false, "Histogram in the heating regime")
	statsCmd.Flags().Uint64Var(&statsSeed, "seed", 1, "Histogram noise seed")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig applies command-line overrides on top of the config file
func loadConfig(interactive bool) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if viewMode != "" {
		cfg.Simulation.ViewMode = viewMode
	}
	if interactive && cfg.Logging.File == "" {
		cfg.Logging.File = defaultLogFile
	}
	return cfg, cfg.Validate()
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	player := audio.NewPlayer(cfg.Audio, logger.Named("audio"))
	if err := player.Start(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
	defer player.Close()

	sim, err := engine.New(cfg, logger.Named("engine"), engine.WithHandler(player))
	if err != nil {
		return err
	}
	sim.SetAudioAvailable(player.Available())

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sim.Run(ctx) })

	if watch && configPath != "" {
		g.Go(func() error {
			return config.Watch(ctx, configPath, func(next config.SimulationConfig) {
				logger.Info("config reloaded", zap.String("path", configPath))
				sim.SubmitConfig(next)
			}, func(err error) {
				logger.Warn("config reload failed", zap.Error(err))
			})
		})
	}

	mon := monitor.New(screen, sim, cfg.Monitor.Refresh)
	g.Go(func() error {
		// quitting the monitor ends the run
		defer stop()
		return mon.Run(ctx)
	})

	err = g.Wait()
	logger.Info("run finished",
		zap.Stringer("run_id", sim.RunID()),
		zap.Stringer("phase", sim.Phase()),
		zap.Int("cues", player.Played()))
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	if headlessTicks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", headlessTicks)
	}
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sim, err := engine.New(cfg, logger.Named("engine"))
	if err != nil {
		return err
	}
	if err := sim.Step(headlessTicks); err != nil {
		return err
	}
	printSnapshot(cmd.OutOrStdout(), sim)
	return nil
}

func printSnapshot(w io.Writer, sim *engine.Simulation) {
	snap := sim.Snapshot()
	st := snap.State
	fmt.Fprintf(w, "run        %s\n", snap.RunID)
	fmt.Fprintf(w, "tick       %d (version %d, t=%.2f)\n", snap.Tick, snap.Version, snap.SimTime)
	fmt.Fprintf(w, "phase      %s  progress %.3f  view %s\n", st.Phase, st.Progress, st.ViewMode)
	fmt.Fprintf(w, "regime     heating=%t detuning=%.4f resilience=%.3f\n",
		snap.Regime.Heating, snap.Regime.Detuning, snap.Resilience)
	fmt.Fprintf(w, "status     %s / %s\n", snap.Assessment.Condition, snap.Assessment.Grade)
	fmt.Fprintf(w, "lattice    amp %.3f (max %.3f)  ipr %.3f  xi %.3f\n",
		snap.Summary.MeanAmplitude, snap.Summary.MaxAmplitude,
		snap.Summary.MeanParticipation, snap.Summary.MeanLocalization)
	if n := len(snap.History); n > 0 {
		last := snap.History[n-1]
		fmt.Fprintf(w, "msd        %.3f measured, %.3f law (%d samples)\n",
			last.MeasuredValue, last.TheoreticalValue, n)
	}
	fmt.Fprintln(w)
	for _, e := range sim.Registry().Snapshot() {
		fmt.Fprintf(w, "%-28s %s\n", e.Key, e.Value)
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	msd := stats.MeanSquaredDisplacement(statsTime, statsU, statsJitter, statsOmega)
	fmt.Fprintf(w, "msd(t=%.2f, U=%.2f, jitter=%.1f, omega=%.4f) = %.4f\n",
		statsTime, statsU, statsJitter, statsOmega, msd)

	hist := stats.LevelSpacingHistogram(statsHeating, vmath.NewFastRand(statsSeed))
	var peak float64
	for _, v := range hist {
		peak = max(peak, v)
	}
	for i, v := range hist {
		bar := 0
		if peak > 0 {
			bar = int(v / peak * 40)
		}
		fmt.Fprintf(w, "%2d %7.4f %s\n", i, v, strings.Repeat("#", bar))
	}
	return nil
}
