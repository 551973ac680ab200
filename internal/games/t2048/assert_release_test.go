//go:build release

package t2048

import (
	"errors"
	"testing"
)

func TestHistoryReturnsInvariantError(t *testing.T) {
	e := newTestEngine(t, 4, 33)
	e.s.spawnLog[1] = e.s.spawnLog[0]

	_, err := e.History()
	var inv *InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("History error = %v, want *InvariantError", err)
	}
	if !errors.Is(err, ErrInvariant) {
		t.Error("InvariantError should match ErrInvariant")
	}
}
