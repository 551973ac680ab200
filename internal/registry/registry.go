// Package registry provides a global registry of playable board variants.
// Variants register themselves in init() functions, allowing the CLI and the
// SSH server to offer them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Variant describes a playable board configuration.
type Variant struct {
	// ID is a unique identifier (e.g., "2048", "2048_5x5").
	// Used for CLI arguments and score storage.
	ID string

	// Title is a human-readable name for display.
	Title string

	// Column is the board dimension; the board holds Column*Column cells.
	Column int
}

var (
	variants = make(map[string]Variant)
	mu       sync.RWMutex
)

// Register adds a variant to the registry.
// Panics if a variant with the same ID is already registered.
func Register(v Variant) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := variants[v.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}
	variants[v.ID] = v
}

// List returns all registered variants, ordered by board size then ID.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Column != result[j].Column {
			return result[i].Column < result[j].Column
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Get looks up a variant by its ID.
// Returns an error if the variant is not registered.
func Get(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("registry: unknown variant %q", id)
	}
	return v, nil
}

// ForColumn returns the first variant with the given board size.
func ForColumn(column int) (Variant, bool) {
	for _, v := range List() {
		if v.Column == column {
			return v, true
		}
	}
	return Variant{}, false
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}
