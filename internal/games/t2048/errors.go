package t2048

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariant marks internal consistency failures: diverging replay,
	// out-of-range spawn cells, boards too large for the spawn encoding.
	ErrInvariant = errors.New("invariant violation")

	// ErrNotInitialized is returned when an engine is used before it has a board.
	ErrNotInitialized = errors.New("session not initialized")

	// ErrStepOutOfRange is returned by Rollback for steps outside [0, ActionCount).
	ErrStepOutOfRange = errors.New("step out of range")

	// ErrReplayMode is returned when a move is attempted while reviewing history.
	ErrReplayMode = errors.New("session is in replay mode")

	// ErrNotReplaying is returned by replay navigation outside replay mode.
	ErrNotReplaying = errors.New("session is not in replay mode")

	ErrInvalidColumn      = errors.New("invalid board column")
	ErrInvalidProbability = errors.New("invalid spawn probability")
	ErrInvalidRecord      = errors.New("invalid session record")
)

// InvariantError describes a failed consistency check.
type InvariantError struct {
	Check string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("t2048: %s: %v", e.Check, ErrInvariant)
}

// Unwrap lets errors.Is match ErrInvariant.
func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}
