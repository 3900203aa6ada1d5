package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run drives the fixed tick and the frame loop until ctx is done or either fails
// Both drivers stop together; a tick or frame in progress completes before return
func (s *Simulation) Run(ctx context.Context) error {
	s.log.Info("simulation started",
		zap.Duration("tick_interval", s.tickCfg.Interval),
		zap.Duration("frame_interval", s.frameInterval),
		zap.Uint64("stats_every", s.statsEvery),
		zap.Int("msd_history", s.history.Cap()))

	scheduler := NewClockScheduler(s.clock, s.tickCfg.Interval, s.Tick)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return scheduler.Run(gctx) })
	g.Go(func() error { return s.frameLoop(gctx) })

	err := g.Wait()
	snap := s.Snapshot()
	if err != nil {
		s.log.Error("simulation failed", zap.Error(err), zap.Uint64("tick", snap.Tick))
		return err
	}
	s.log.Info("simulation stopped",
		zap.Uint64("ticks", scheduler.TickCount()),
		zap.Stringer("phase", snap.State.Phase),
		zap.Float64("progress", snap.State.Progress))
	return nil
}

// frameLoop integrates shards once per frame interval using measured clock deltas
func (s *Simulation) frameLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	last := s.clock.Elapsed()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		now := s.clock.Elapsed()
		dt := now - last
		last = now
		if dt <= 0 {
			continue
		}
		if err := s.safeFrame(dt); err != nil {
			return err
		}
	}
}

func (s *Simulation) safeFrame(dt time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w in frame: %v\n%s", ErrTickPanic, r, debug.Stack())
		}
	}()
	return s.Frame(dt)
}
