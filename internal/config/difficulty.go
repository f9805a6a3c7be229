package config

import "github.com/vovakirdan/tui-2048/internal/board"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Valid reports whether the preset is a known name.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	default:
		return false
	}
}

// Spawn4ProbForPreset returns the chance of a 4 tile for a difficulty preset.
// Harder presets spawn more 4s, which fill the board faster.
func Spawn4ProbForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.25
	default:
		return board.DefaultSpawn4Prob
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config unchanged.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty = preset
	cfg.Board.Spawn4Prob = Spawn4ProbForPreset(preset)
}
