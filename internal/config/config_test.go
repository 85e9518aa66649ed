package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseTetris(defaultTetrisYAML)
	require.NoError(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := writeConfig(t, "board:\n  width: 12\n  height: 24\n")

	cfg, err := LoadTetris(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Board.Width)
	assert.Equal(t, 24, cfg.Board.Height)
	// Untouched sections keep their defaults
	assert.Equal(t, 600, cfg.Gravity.BaseIntervalMs)
	assert.Equal(t, 100, cfg.Scoring.PointsPerRow)
	assert.Equal(t, 1, cfg.Spawn.Buffer)
}

func TestLoadTetrisCustomPathErrors(t *testing.T) {
	_, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadTetris(writeConfig(t, "board: [not, a, map]\n"))
	assert.Error(t, err)

	_, err = LoadTetris(writeConfig(t, "board:\n  width: 3\n"))
	assert.ErrorContains(t, err, "board.width")
}

func TestLoadTetrisFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadTetrisLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "tetris.yaml"), []byte("scoring:\n  points_per_row: 40\n"), 0o600))

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Scoring.PointsPerRow)
}

func TestLoadTetrisUserDirWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	userDir := filepath.Join(home, ".tetris", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "tetris.yaml"), []byte("board:\n  width: 8\n  height: 16\n"), 0o600))

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Board.Width)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TetrisConfig)
		field  string
	}{
		{"narrow board", func(c *TetrisConfig) { c.Board.Width = 4 }, "board.width"},
		{"short board", func(c *TetrisConfig) { c.Board.Height = 0 }, "board.height"},
		{"zero base interval", func(c *TetrisConfig) { c.Gravity.BaseIntervalMs = 0 }, "base_interval_ms"},
		{"zero min interval", func(c *TetrisConfig) { c.Gravity.MinIntervalMs = 0 }, "min_interval_ms"},
		{"negative step", func(c *TetrisConfig) { c.Gravity.LevelStepMs = -1 }, "level_step_ms"},
		{"negative points", func(c *TetrisConfig) { c.Scoring.PointsPerRow = -5 }, "points_per_row"},
		{"negative buffer", func(c *TetrisConfig) { c.Spawn.Buffer = -1 }, "spawn.buffer"},
		{"tall buffer", func(c *TetrisConfig) { c.Spawn.Buffer = 4 }, "spawn.buffer"},
	}

	require.NoError(t, DefaultTetrisConfig().Validate())

	noBuffer := DefaultTetrisConfig()
	noBuffer.Spawn.Buffer = 0
	require.NoError(t, noBuffer.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.field)
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, p := range Presets {
		got, err := ParseDifficulty(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParseDifficulty(" HARD ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, got)

	got, err = ParseDifficulty("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseDifficulty("nightmare")
	assert.Error(t, err)
}

func TestApplyTetrisPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		base     int
		step     int
		minFloor int
	}{
		{"", 600, 50, 100},
		{DifficultyEasy, 800, 50, 100},
		{DifficultyNormal, 600, 50, 100},
		{DifficultyHard, 400, 50, 100},
		{DifficultyFixed, 600, 0, 100},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			ApplyTetrisPreset(&cfg, tt.preset)
			assert.Equal(t, tt.base, cfg.Gravity.BaseIntervalMs)
			assert.Equal(t, tt.step, cfg.Gravity.LevelStepMs)
			assert.Equal(t, tt.minFloor, cfg.Gravity.MinIntervalMs)
			assert.NoError(t, cfg.Validate())
		})
	}
}
