package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the write bursts editors emit on save
const watchDebounce = 200 * time.Millisecond

// Watch reloads path on change and hands each valid SimulationConfig to fn
// Blocks until ctx is done; reload failures go to onErr and keep the last good config
func Watch(ctx context.Context, path string, fn func(SimulationConfig), onErr func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so atomic rename-on-save is observed
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	if onErr == nil {
		onErr = func(error) {}
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onErr(fmt.Errorf("config watcher: %w", err))

		case <-pending:
			pending = nil
			cfg, err := Load(abs)
			if err != nil {
				onErr(err)
				continue
			}
			fn(cfg.Simulation)
		}
	}
}
