// Package config provides YAML-based game configuration loading and
// difficulty presets for the tetris platform.
package config

import (
	"errors"
	"fmt"
)

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Gravity  GravityConfig  `yaml:"gravity"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Spawn    SpawnConfig    `yaml:"spawn"`
	Controls ControlsConfig `yaml:"controls"`
}

// BoardConfig defines the well size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GravityConfig defines how fast pieces fall and how the speed scales with score.
type GravityConfig struct {
	BaseIntervalMs int `yaml:"base_interval_ms"` // Fall interval at level 0
	MinIntervalMs  int `yaml:"min_interval_ms"`  // Floor for the fall interval
	LevelStepMs    int `yaml:"level_step_ms"`    // Interval reduction per level, 0 disables speed-up
	ScorePerLevel  int `yaml:"score_per_level"`
}

// ScoringConfig defines score awarded for cleared rows.
type ScoringConfig struct {
	PointsPerRow int `yaml:"points_per_row"`
}

// SpawnConfig defines where new pieces appear.
type SpawnConfig struct {
	Buffer int `yaml:"buffer"` // Rows above the visible board a piece may spawn into
}

// ControlsConfig defines input behaviour.
type ControlsConfig struct {
	PauseBlocksInput bool `yaml:"pause_blocks_input"`
}

// Minimum board dimensions that fit every piece at its spawn position.
const (
	MinBoardWidth  = 5
	MinBoardHeight = 4
)

// MaxSpawnBuffer bounds spawn.buffer. With a taller buffer a piece can
// spawn and lock wholly above the board, so the game never ends.
const MaxSpawnBuffer = 1

// Validate checks the config for values the engine cannot run with.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Board.Width < MinBoardWidth {
		errs = append(errs, fmt.Errorf("board.width must be at least %d, got %d", MinBoardWidth, c.Board.Width))
	}
	if c.Board.Height < MinBoardHeight {
		errs = append(errs, fmt.Errorf("board.height must be at least %d, got %d", MinBoardHeight, c.Board.Height))
	}
	if c.Gravity.BaseIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("gravity.base_interval_ms must be positive, got %d", c.Gravity.BaseIntervalMs))
	}
	if c.Gravity.MinIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("gravity.min_interval_ms must be positive, got %d", c.Gravity.MinIntervalMs))
	}
	if c.Gravity.LevelStepMs < 0 {
		errs = append(errs, fmt.Errorf("gravity.level_step_ms must not be negative, got %d", c.Gravity.LevelStepMs))
	}
	if c.Gravity.ScorePerLevel < 0 {
		errs = append(errs, fmt.Errorf("gravity.score_per_level must not be negative, got %d", c.Gravity.ScorePerLevel))
	}
	if c.Scoring.PointsPerRow < 0 {
		errs = append(errs, fmt.Errorf("scoring.points_per_row must not be negative, got %d", c.Scoring.PointsPerRow))
	}
	if c.Spawn.Buffer < 0 || c.Spawn.Buffer > MaxSpawnBuffer {
		errs = append(errs, fmt.Errorf("spawn.buffer must be between 0 and %d, got %d", MaxSpawnBuffer, c.Spawn.Buffer))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid tetris config: %w", err)
	}
	return nil
}
