package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile2048/internal/platform/tui"
	"github.com/vovakirdan/tile2048/internal/registry"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a board. Without an argument an
interactive scoreboard for every board is opened.

Examples:
  tile2048 scores
  tile2048 scores 2048
  tile2048 scores 2048_5x5 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores of the board")
}

func runScores(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if len(args) == 0 {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, "", width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	variant, err := registry.Get(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tile2048 list' to see available boards.")
		return
	}

	if flagClearScores {
		if err := store.ClearScores(variant.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s\n", variant.Title)
		return
	}

	scores, err := store.TopScores(variant.ID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", variant.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tile2048 play %s' to set the first high score!\n", variant.ID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Max", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "---", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-8d  %s\n", i+1, entry.Score, entry.MaxNumber, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.AllVariantStats()
	if err == nil {
		if st, ok := stats[variant.ID]; ok {
			fmt.Println()
			fmt.Printf("Games: %d  Best: %d  Best tile: %d  Average: %.0f\n",
				st.GamesCount, st.HighScore, st.BestTile, st.AvgScore)
		}
	}
}
