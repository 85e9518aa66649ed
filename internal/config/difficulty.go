package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // normal speed, no level speed-up
)

// Presets lists the difficulty presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParseDifficulty converts a flag value to a preset. An empty string means
// no preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// BaseIntervalForPreset returns the level-0 fall interval for a preset,
// or 0 if the preset does not change it.
func BaseIntervalForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 800
	case DifficultyNormal, DifficultyFixed:
		return 600
	case DifficultyHard:
		return 400
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables level speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if ms := BaseIntervalForPreset(preset); ms > 0 {
		cfg.Gravity.BaseIntervalMs = ms
		cfg.Gravity.MinIntervalMs = min(cfg.Gravity.MinIntervalMs, ms)
	}
	if IsFixedPreset(preset) {
		cfg.Gravity.LevelStepMs = 0
	}
}
