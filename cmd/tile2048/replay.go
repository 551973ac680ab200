package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile2048/internal/games/t2048"
	"github.com/vovakirdan/tile2048/internal/platform/tui"
)

var flagVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Review a stored game",
	Long: `Open a stored game in review mode. Step through it with ←/→, press
Enter to continue playing from the shown position (later moves are
discarded) or Esc to continue from the end.

With --verify the game is rebuilt from its move log and checked against the
stored board without opening the UI.

Examples:
  tile2048 replay 6f0c1d2e-...
  tile2048 replay 6f0c1d2e-... --verify`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Check the move log and exit")
}

func runReplay(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	s, err := tui.LoadSession(store, args[0], logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagVerify {
		h, err := s.Engine.History()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Session %s is consistent: %d moves, score %d, max tile %d\n",
			s.Meta.ID, h.Len()-1, h.Scores[h.Len()-1], s.Engine.MaxNumber())
		return
	}

	requireTerminal()
	if s.Engine.Mode() != t2048.ModeReplay {
		if _, err := s.Engine.EnterReplay(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if _, err := tui.Run(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
