package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile2048/internal/platform/tui"
)

var (
	flagAllOwners bool
	flagLimit     int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored games",
	Long: `List stored games, newest first, with their board, score, highest tile
and start time. Use an ID with 'replay' or 'export'.

Examples:
  tile2048 sessions
  tile2048 sessions --all --limit 50`,
	Args: cobra.NoArgs,
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().BoolVar(&flagAllOwners, "all", false, "Include games of every owner (SSH users)")
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of games to show")
}

func runSessions(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	owner := localOwner()
	if flagAllOwners {
		owner = ""
	}

	list, err := store.ListSessions(owner, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if len(list) == 0 {
		fmt.Println("No games stored yet.")
		fmt.Println()
		fmt.Println("Run 'tile2048 play' to start one.")
		return
	}

	fmt.Println(tui.SessionTable(list, flagAllOwners))
}
