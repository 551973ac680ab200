package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH user name owns its own games: reconnecting resumes the unfinished
game. Scores are stored per server (all users share the leaderboard).

Defaults come from the server section of the config file. Wish generates the
host key on first start.

Examples:
  tile2048 serve                           # Listen on the configured address
  tile2048 serve --ssh :2222               # Listen on port 2222
  tile2048 serve --host-key ./host_key     # Use a specific host key

Users can connect with:
  ssh localhost -p 2048`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	serverCfg := tui.NewSSHServerConfig(cfg)
	serverCfg.Settings.Seed = flagSeed
	if flagSSHAddr != "" {
		serverCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		serverCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	store := openStoreOptional()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(serverCfg, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting tile2048 SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
