package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top scores and statistics for a variant.
Without a variant, shows a summary for every variant played so far.

Examples:
  tui2048 scores
  tui2048 scores 2048
  tui2048 scores 2048_large --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.DefaultLimit, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		err = printSummary(out, store)
	} else {
		err = printVariantScores(out, store, args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printSummary prints one line of statistics per played variant.
func printSummary(out io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'tui2048 play' to set the first high score!")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(out, "  %-12s  %6s  %5s  %8s  %8s\n", "Variant", "Games", "Wins", "Best", "Max Tile")
	fmt.Fprintf(out, "  %-12s  %6s  %5s  %8s  %8s\n", "-------", "-----", "----", "----", "--------")
	for _, id := range ids {
		s := all[id]
		fmt.Fprintf(out, "  %-12s  %6d  %5d  %8d  %8d\n", id, s.GamesCount, s.Wins, s.HighScore, s.BestTile)
	}
	return nil
}

// printVariantScores prints the top scores and statistics of one variant.
func printVariantScores(out io.Writer, store *storage.Store, gameID string) error {
	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown variant %q, run 'tui2048 list' to see available variants", gameID)
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n", info.Title)
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'tui2048 play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-8s  %-3s  %s\n", "Rank", "Score", "Max Tile", "Won", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-8s  %-3s  %s\n", "----", "-----", "--------", "---", "----")
	for i, entry := range scores {
		won := ""
		if entry.Won {
			won = "yes"
		}
		fmt.Fprintf(out, "  %-4d  %-10d  %-8d  %-3s  %s\n",
			i+1, entry.Score, entry.MaxTile, won, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d  Games: %d  Wins: %d  Average: %.0f\n",
		stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	return nil
}
