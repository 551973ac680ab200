package t2048

import "fmt"

// Direction is a move direction. Its ordinal is the byte stored in the
// action log, so the order of the constants must never change.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// directionCount is the number of valid directions.
const directionCount = 4

// Directions returns all directions in ordinal order.
func Directions() []Direction {
	return []Direction{DirLeft, DirRight, DirUp, DirDown}
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	return d < directionCount
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// DirectionFromByte decodes an action log entry.
func DirectionFromByte(b byte) (Direction, error) {
	d := Direction(b)
	if !d.Valid() {
		return 0, fmt.Errorf("t2048: action byte %d is not a direction: %w", b, ErrInvariant)
	}
	return d, nil
}
