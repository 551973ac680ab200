// Package t2048 implements a 2048 engine whose history is an append-only log
// of move directions and packed tile spawns. Every intermediate board can be
// rebuilt from the logs, which drives both the replay browser and undo.
package t2048

import (
	"fmt"

	"github.com/vovakirdan/tile2048/internal/registry"
)

// DefaultVariant is the classic 4x4 game.
const DefaultVariant = "2048"

// variantColumns lists the registered board sizes. 8x8 is the largest board
// the spawn encoding can address.
var variantColumns = []int{3, 4, 5, 6, 8}

func init() {
	for _, column := range variantColumns {
		registry.Register(Variant(column))
	}
}

// Variant returns the registry entry for a board size.
func Variant(column int) registry.Variant {
	if column == 4 {
		return registry.Variant{ID: DefaultVariant, Title: "2048", Column: column}
	}
	return registry.Variant{
		ID:     fmt.Sprintf("%s_%dx%d", DefaultVariant, column, column),
		Title:  fmt.Sprintf("2048 (%dx%d)", column, column),
		Column: column,
	}
}
