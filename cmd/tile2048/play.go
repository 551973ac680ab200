package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile2048/internal/games/t2048"
	"github.com/vovakirdan/tile2048/internal/platform/tui"
	"github.com/vovakirdan/tile2048/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a board",
	Long: `Start or resume a game. Without an argument the board from the config
file (board.column) is used. An unfinished game on the same board is resumed;
picking another board archives it and records its score.

Controls:
  Arrows/WASD/hjkl  - Slide tiles
  U                 - Undo the last move
  V                 - Review the game (←/→ step, Enter play from here, Esc back)
  N                 - New game
  Ctrl+S            - Save the board as text
  Q/Ctrl+C          - Quit (the game is kept)

Examples:
  tile2048 play
  tile2048 play 2048_3x3
  tile2048 play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a board interactively",
	Long: `Start with a board picker. After leaving a game you return to the picker.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play the board
  Tab          - High scores
  Q            - Quit`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func requireTerminal() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: tile2048 needs an interactive terminal")
		os.Exit(1)
	}
}

func runPlay(_ *cobra.Command, args []string) {
	requireTerminal()

	variant := t2048.Variant(cfg.Board.Column)
	if v, ok := registry.ForColumn(cfg.Board.Column); ok {
		variant = v
	}
	if len(args) == 1 {
		v, err := registry.Get(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'tile2048 list' to see available boards.")
			os.Exit(1)
		}
		variant = v
	}

	store := openStoreOptional()
	if store != nil {
		defer store.Close()
	}

	s, err := tui.OpenSession(store, localOwner(), variant, settings(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := tui.Run(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func runMenu(_ *cobra.Command, _ []string) {
	requireTerminal()

	store := openStoreOptional()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunApp(store, localOwner(), settings(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
