package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/golden-sieve/config"
	"github.com/lixenwraith/golden-sieve/parameter"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestStatsCommand(t *testing.T) {
	out := execute(t, "stats", "--time", "0")
	lines := strings.Split(strings.TrimSpace(out), "\n")

	require.Len(t, lines, 1+parameter.LevelSpacingBins)
	assert.Contains(t, lines[0], "= 1.0000")
}

func TestHeadlessCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	cfg := config.Default()
	cfg.Simulation.Seed = 3
	cfg.Logging.Level = "error"
	require.NoError(t, cfg.Save(path))

	out := execute(t, "headless", "--config", path, "--ticks", "40")
	assert.Contains(t, out, "tick       40")
	assert.Contains(t, out, "engine.ticks")
}

func TestHeadlessRejectsNonPositiveTicks(t *testing.T) {
	rootCmd.SetArgs([]string{"headless", "--ticks", "0"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
	headlessTicks = 600
}

func TestLoadConfigRoutesInteractiveLogsToFile(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	defer func() { configPath = "" }()

	cfg, err := loadConfig(true)
	require.NoError(t, err)
	assert.Equal(t, defaultLogFile, cfg.Logging.File)

	cfg, err = loadConfig(false)
	require.NoError(t, err)
	assert.Empty(t, cfg.Logging.File)

	_, err = os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestHeadlessViewOverride(t *testing.T) {
	defer func() { viewMode, headlessTicks, configPath = "", 600, "" }()

	path := filepath.Join(t.TempDir(), "manual.yaml")
	cfg := config.Default()
	cfg.Simulation.AutoAdvance = false
	cfg.Logging.Level = "error"
	require.NoError(t, cfg.Save(path))

	out := execute(t, "headless", "--config", path, "--ticks", "1", "--view", "FOUR_D")
	assert.Contains(t, out, "view FOUR_D")

	rootCmd.SetArgs([]string{"headless", "--ticks", "1", "--view", "sideways"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.ErrorIs(t, rootCmd.Execute(), config.ErrInvalid)
}
