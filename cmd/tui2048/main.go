// tui2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	tui2048 list              - List board variants
//	tui2048 play [variant]    - Play a variant (default: 2048)
//	tui2048 menu              - Pick variants from an interactive menu
//	tui2048 serve             - Start SSH server for remote play
//	tui2048 scores [variant]  - Show high scores and statistics
//	tui2048 config            - Print the effective configuration
//	tui2048 replay <v> <m>... - Play scripted moves and print the board
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.t2048/config.yaml)
//	--seed <value>       - RNG seed for reproducible games (0 means time-based)
//	--db <path>          - Scores database path
//	--difficulty <name>  - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagSeed       int64
	flagDBPath     string
	flagDifficulty string

	// Loaded in PersistentPreRunE
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tui2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `tui2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board in four directions. Equal tiles that collide merge into
their sum. Reach the target tile to win, run out of moves to lose.

Available commands:
  list     - Show all board variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the effective configuration
  replay   - Play scripted moves and print the board

Examples:
  tui2048 play
  tui2048 play 2048_large --difficulty hard
  tui2048 menu
  tui2048 serve --ssh :2222
  tui2048 scores 2048`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed; 0 picks a time-based seed, so fixed seeds must be non-zero")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup loads the configuration, applies flag overrides and
// configures the game package and logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		if !preset.Valid() {
			return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		cfg.Difficulty = preset
		config.ApplyPreset(&cfg, preset)
	}

	if err := t2048.Configure(t2048.Settings{
		Size:        cfg.Board.Size,
		WinTarget:   cfg.Board.WinTarget,
		Spawn4Prob:  cfg.Board.Spawn4Prob,
		AutoRestart: cfg.Board.AutoRestart,
	}); err != nil {
		return err
	}

	logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Level:           cfg.LogLevel(),
	})
	appConfig = cfg

	logger.Debug("configuration loaded",
		"board", cfg.Board.Size,
		"target", cfg.Board.WinTarget,
		"spawn4", cfg.Board.Spawn4Prob,
		"db", cfg.Storage.DBPath,
	)
	return nil
}

// openStore opens the scores database. A failure is logged and the
// returned store is nil, so the game still runs without persistence.
func openStore() (tui.ScoreStore, func()) {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", appConfig.Storage.DBPath, "error", err)
		return nil, func() {}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing scores database", "error", err)
		}
	}
}
