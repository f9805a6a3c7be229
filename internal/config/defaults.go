package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-2048/internal/board"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Size:       board.DefaultSize,
			WinTarget:  board.DefaultWinTarget,
			Spawn4Prob: board.DefaultSpawn4Prob,
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048/scores.db",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
		TickRate: 30,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
