package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile2048/internal/archive"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a stored game as JSON",
	Long: `Write a stored game, including its full move and spawn logs, as a JSON
document. The document can be loaded elsewhere with 'import'.

Examples:
  tile2048 export 6f0c1d2e-... > game.json
  tile2048 export 6f0c1d2e-... -o game.json`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExport(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	meta, rec, err := store.LoadSession(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var w io.Writer = os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := archive.Encode(w, archive.NewDocument(meta.ID, meta.Variant, rec)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagOutput != "" {
		logger.Info("exported session", "id", meta.ID, "file", flagOutput)
	}
}
