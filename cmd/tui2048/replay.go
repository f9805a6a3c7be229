package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var replayCmd = &cobra.Command{
	Use:   "replay <variant> <move>...",
	Short: "Play a scripted list of moves and print the board",
	Long: `Plays the given moves on a fresh board without opening the TUI.
Moves are up, down, left, right or their first letters.
Pass --seed to make the run reproducible; without it the seed used is printed.

Examples:
  tui2048 replay 2048 left up up right --seed 42
  tui2048 replay 2048_quick l u r d`,
	Args: cobra.MinimumNArgs(2),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	v, ok := t2048.VariantByID(args[0])
	if !ok {
		return fmt.Errorf("unknown variant %q", args[0])
	}

	dirs := make([]board.Direction, 0, len(args)-1)
	for _, arg := range args[1:] {
		dir, err := board.ParseDirection(arg)
		if err != nil {
			return err
		}
		dirs = append(dirs, dir)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game := t2048.New(v)
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed})
	engine := game.Engine()

	played := 0
	for _, dir := range dirs {
		turn, err := engine.Play(dir)
		if err != nil {
			return err
		}
		played++
		if turn.Lost && !turn.Restarted {
			break
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed: %d\n", seed)
	fmt.Fprintf(out, "Moves: %d/%d\n", played, len(dirs))
	fmt.Fprintln(out, engine.Grid().String())
	fmt.Fprintf(out, "Score: %d  Max tile: %d  Status: %s\n", engine.Score(), engine.MaxTile(), engine.Status())
	return nil
}
