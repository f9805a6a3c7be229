// Package config loads the tui-2048 settings from YAML files, the environment
// and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config is the complete application configuration.
type Config struct {
	Board      BoardConfig      `yaml:"board"`
	Difficulty DifficultyPreset `yaml:"difficulty" env:"T2048_DIFFICULTY" env-description:"Difficulty preset: easy, normal or hard"`
	Storage    StorageConfig    `yaml:"storage"`
	SSH        SSHConfig        `yaml:"ssh"`
	Log        LogConfig        `yaml:"log"`
	TickRate   int              `yaml:"tick_rate" env:"T2048_TICK_RATE" env-default:"30" env-description:"UI ticks per second"`
}

// BoardConfig defines the classic board and tile spawning.
type BoardConfig struct {
	Size        int     `yaml:"size" env:"T2048_BOARD_SIZE" env-description:"Board side length"`
	WinTarget   int     `yaml:"win_target" env:"T2048_WIN_TARGET" env-description:"Tile value that wins"`
	Spawn4Prob  float64 `yaml:"spawn4_prob" env:"T2048_SPAWN4_PROB" env-description:"Probability that a spawned tile is a 4"`
	AutoRestart bool    `yaml:"auto_restart" env:"T2048_AUTO_RESTART" env-description:"Start a new game as soon as one is lost"`
}

// StorageConfig defines where scores are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"T2048_DB_PATH" env-default:"~/.t2048/scores.db" env-description:"Path to the scores database"`
}

// SSHConfig defines the remote play server.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"T2048_SSH_ADDRESS" env-default:":23234" env-description:"SSH listen address"`
	HostKey     string        `yaml:"host_key" env:"T2048_SSH_HOST_KEY" env-description:"Path to the SSH host key"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"T2048_SSH_IDLE_TIMEOUT" env-default:"30m" env-description:"Disconnect idle sessions after this long"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level" env:"T2048_LOG_LEVEL" env-default:"info" env-description:"Log level: debug, info, warn, error"`
}

// Validate checks every field and returns the first problem found.
func (c Config) Validate() error {
	if c.Board.Size < board.MinSize {
		return fmt.Errorf("%w: board.size %d is below %d", ErrInvalidConfig, c.Board.Size, board.MinSize)
	}
	if c.Board.WinTarget < 4 || !board.IsTileValue(c.Board.WinTarget) {
		return fmt.Errorf("%w: board.win_target %d is not a power of two >= 4", ErrInvalidConfig, c.Board.WinTarget)
	}
	if c.Board.Spawn4Prob < 0 || c.Board.Spawn4Prob > 1 {
		return fmt.Errorf("%w: board.spawn4_prob %v is outside [0, 1]", ErrInvalidConfig, c.Board.Spawn4Prob)
	}
	if c.Difficulty != "" && !c.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty %q", ErrInvalidConfig, c.Difficulty)
	}
	if c.TickRate < 1 || c.TickRate > 120 {
		return fmt.Errorf("%w: tick_rate %d is outside [1, 120]", ErrInvalidConfig, c.TickRate)
	}
	if c.SSH.Address == "" {
		return fmt.Errorf("%w: ssh.address is empty", ErrInvalidConfig)
	}
	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("%w: ssh.idle_timeout %v is negative", ErrInvalidConfig, c.SSH.IdleTimeout)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
