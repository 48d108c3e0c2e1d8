package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocket-arcade/internal/registry"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 runs of the specified mode.

Examples:
  rocket scores rocket
  rocket scores rocket_endless
  rocket scores rocket --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every stored run of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'rocket list' to see available modes.")
		os.Exit(1)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearRuns(gameID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared all runs of %s.\n", game.Title())
		return
	}

	runs, err := store.TopRuns(gameID, 10)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'rocket play %s' to set the first high score!\n", gameID)
		return
	}

	tickRate := max(flagFPS, 1)
	fmt.Printf("  %-4s  %-8s  %-6s  %-7s  %-12s  %s\n", "Rank", "Score", "Kills", "Time", "Seed", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-7s  %-12s  %s\n", "----", "-----", "-----", "----", "----", "----")
	for i, r := range runs {
		secs := r.Ticks / int64(tickRate)
		fmt.Printf("  %-4d  %-8d  %-6d  %-7s  %-12d  %s\n",
			i+1, r.Score, r.Kills, fmt.Sprintf("%d:%02d", secs/60, secs%60), r.Seed,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.Stats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  |  Runs: %d  |  Avg: %.0f  |  Kills: %d\n",
			st.HighScore, st.Runs, st.AvgScore, st.TotalKills)
	}
}
