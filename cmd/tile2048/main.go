// tile2048 is a terminal 2048 game that records every move, so any game can
// be reviewed step by step and resumed from an earlier position.
//
// Usage:
//
//	tile2048 list               - List board variants
//	tile2048 play [variant]     - Play a board (configured board by default)
//	tile2048 menu               - Pick a board interactively
//	tile2048 serve              - Start SSH server for remote play
//	tile2048 sessions           - List stored games
//	tile2048 replay <id>        - Review a stored game
//	tile2048 scores [variant]   - Show high scores
//	tile2048 export <id>        - Write a game as JSON
//	tile2048 import <file>      - Load a game from JSON
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.tile2048, ./configs)
//	--db <path>         - Database path (overrides storage.db_path)
//	--seed <value>      - RNG seed for reproducible spawns
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile2048/internal/config"
	_ "github.com/vovakirdan/tile2048/internal/games/t2048" // Registers board variants
	"github.com/vovakirdan/tile2048/internal/platform/tui"
	"github.com/vovakirdan/tile2048/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string

	// Set up by the root command before any subcommand runs.
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tile2048",
	Short: "2048 in your terminal, with full move history",
	Long: `tile2048 is a terminal 2048 game. Every move and every spawned tile is
recorded, so a game can be reviewed step by step and resumed from any
earlier position.

Available commands:
  list      - Show board variants
  play      - Play a board directly
  menu      - Interactive board picker
  serve     - Start SSH server for remote play
  sessions  - List stored games
  replay    - Review a stored game
  scores    - View high scores
  export    - Write a game as JSON
  import    - Load a game from JSON

Examples:
  tile2048 play
  tile2048 play 2048_5x5
  tile2048 serve
  tile2048 replay 2f1c...`,
	PersistentPreRun: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the game database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(_ *cobra.Command, _ []string) {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := cfg.LogLevel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tile2048",
		Level:           level,
	})
}

// openStore opens the database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// openStoreOptional opens the database; games still run without it.
func openStoreOptional() *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open database, games will not be saved", "error", err)
		return nil
	}
	return store
}

func settings() tui.Settings {
	return tui.Settings{
		ProbabilityOfFour: cfg.Board.ProbabilityOfFour,
		Seed:              flagSeed,
	}
}

// localOwner names the local player's sessions.
func localOwner() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
