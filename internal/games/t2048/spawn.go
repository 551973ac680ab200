package t2048

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// DefaultProbabilityOfFour is the chance that a spawned tile is a 4.
	DefaultProbabilityOfFour = 0.25

	// MaxBoardCells is the largest board the 6-bit cell field can address.
	MaxBoardCells = spawnCellMask + 1

	spawnCellMask = 0x3F
	spawnFourBit  = 6
)

// TileSpawn is a tile placed on the board by the spawner.
type TileSpawn struct {
	Cell  int
	Value int // 2 or 4
}

// EncodeSpawn packs a spawn into one log byte: bit 6 is set for a 4,
// bits 0-5 hold the cell index.
func EncodeSpawn(s TileSpawn, boardLen int) (byte, error) {
	if boardLen > MaxBoardCells {
		return 0, fmt.Errorf("t2048: board of %d cells exceeds spawn encoding: %w", boardLen, ErrInvariant)
	}
	if s.Cell < 0 || s.Cell >= boardLen {
		return 0, fmt.Errorf("t2048: spawn cell %d outside board of %d: %w", s.Cell, boardLen, ErrInvariant)
	}

	var four byte
	switch s.Value {
	case 2:
	case 4:
		four = 1
	default:
		return 0, fmt.Errorf("t2048: spawn value %d: %w", s.Value, ErrInvariant)
	}

	return four<<spawnFourBit | byte(s.Cell)&spawnCellMask, nil
}

// DecodeSpawn unpacks a spawn log byte. Bit 7 is ignored.
func DecodeSpawn(b byte) TileSpawn {
	s := TileSpawn{Cell: int(b & spawnCellMask), Value: 2}
	if (b>>spawnFourBit)&1 == 1 {
		s.Value = 4
	}
	return s
}

// Spawner places random tiles. It is the only nondeterministic part of a game.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner. A nil rng is replaced by a time-seeded one.
func NewSpawner(rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Spawner{rng: rng}
}

// Spawn places a 2 or 4 on a uniformly chosen empty cell.
// Returns false and leaves the board untouched when it is full.
func (s *Spawner) Spawn(board []int, probabilityOfFour float64) (TileSpawn, bool) {
	empty := EmptyCells(board)
	if len(empty) == 0 {
		return TileSpawn{}, false
	}

	cell := empty[s.rng.Intn(len(empty))]
	value := 2
	if s.rng.Float64() < probabilityOfFour {
		value = 4
	}

	board[cell] = value
	return TileSpawn{Cell: cell, Value: value}, true
}

// place applies a decoded spawn during replay. The target cell must be empty.
func place(board []int, s TileSpawn) bool {
	if s.Cell < 0 || s.Cell >= len(board) || board[s.Cell] != 0 {
		return false
	}
	board[s.Cell] = s.Value
	return true
}
