package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default configuration: a 10x20 board,
// 600ms gravity getting 50ms faster every 1000 points down to 100ms.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Gravity: GravityConfig{
			BaseIntervalMs: 600,
			MinIntervalMs:  100,
			LevelStepMs:    50,
			ScorePerLevel:  1000,
		},
		Scoring: ScoringConfig{
			PointsPerRow: 100,
		},
		Spawn: SpawnConfig{
			Buffer: 1,
		},
	}
}
