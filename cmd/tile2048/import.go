package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile2048/internal/archive"
	"github.com/vovakirdan/tile2048/internal/games/t2048"
	"github.com/vovakirdan/tile2048/internal/registry"
	"github.com/vovakirdan/tile2048/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a game from JSON",
	Long: `Load a game written by 'export'. The game is stored as finished under
the local user, so it does not replace the game you are playing. Review it
with 'replay'. A new ID is assigned when the document's ID is already taken.

Examples:
  tile2048 import game.json`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func runImport(_ *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	doc, err := archive.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	defer store.Close()

	meta := importMeta(store, doc, localOwner())
	if err := store.SaveSession(meta, doc.Record()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %s as %s\n", args[0], meta.ID)
	fmt.Printf("Run 'tile2048 replay %s' to review it.\n", meta.ID)
}

// importMeta keeps the document's ID when it is an unused UUID and falls
// back to the board size when the variant is unknown.
func importMeta(store *storage.Store, doc archive.Document, owner string) storage.SessionMeta {
	id := doc.ID
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	} else if _, _, err := store.LoadSession(id); !errors.Is(err, storage.ErrSessionNotFound) {
		id = uuid.NewString()
	}

	variant := doc.Variant
	if !registry.Exists(variant) {
		variant = t2048.Variant(int(doc.Column)).ID
	}

	return storage.SessionMeta{ID: id, Owner: owner, Variant: variant, Archived: true}
}
