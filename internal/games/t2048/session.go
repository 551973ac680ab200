package t2048

import (
	"fmt"
	"slices"
)

// Mode is the session state machine mode.
type Mode int32

const (
	ModePlay Mode = iota
	ModeReplay
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModePlay:
		return "play"
	case ModeReplay:
		return "replay"
	default:
		return "unknown"
	}
}

const (
	// InitSpawnCount is the number of tiles placed on a fresh board.
	InitSpawnCount = 2

	// MinColumn and MaxColumn bound the board dimension. 8x8 is the largest
	// board whose cells fit the spawn encoding.
	MinColumn = 2
	MaxColumn = 8

	// historyChunk is the growth step of the physical log buffers.
	historyChunk = 1024
)

// Record is the flat, persistable form of a game session.
// Logs may hold bytes past their counts after a rollback; only the first
// SpawnCount/ActionCount bytes are live.
type Record struct {
	ProbabilityOfFour    float64
	Column               int32
	Score                int32
	Board                []int32
	SpawnLog             []byte
	SpawnCount           int32
	ActionLog            []byte
	ActionCount          int32
	Mode                 Mode
	ReplayCursor         int32
	MaxNumber            int32
	HistoryMaxNumber     int32
	StartTimeEpochMillis int64
	Initialized          bool
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	r.Board = slices.Clone(r.Board)
	r.SpawnLog = slices.Clone(r.SpawnLog)
	r.ActionLog = slices.Clone(r.ActionLog)
	return r
}

// Validate checks the structural invariants of a record.
// Uninitialized records only need a usable column and probability.
func (r Record) Validate() error {
	if r.Column < MinColumn || r.Column > MaxColumn {
		return fmt.Errorf("t2048: column %d: %w", r.Column, ErrInvalidColumn)
	}
	if r.ProbabilityOfFour < 0 || r.ProbabilityOfFour > 1 {
		return fmt.Errorf("t2048: probability %v: %w", r.ProbabilityOfFour, ErrInvalidProbability)
	}
	if !r.Initialized {
		return nil
	}

	cells := int(r.Column * r.Column)
	switch {
	case len(r.Board) != cells:
		return fmt.Errorf("t2048: board has %d cells, want %d: %w", len(r.Board), cells, ErrInvalidRecord)
	case r.ActionCount < 0 || int(r.ActionCount) > len(r.ActionLog):
		return fmt.Errorf("t2048: action count %d outside log of %d: %w", r.ActionCount, len(r.ActionLog), ErrInvalidRecord)
	case r.SpawnCount < 0 || int(r.SpawnCount) > len(r.SpawnLog):
		return fmt.Errorf("t2048: spawn count %d outside log of %d: %w", r.SpawnCount, len(r.SpawnLog), ErrInvalidRecord)
	case r.SpawnCount > r.ActionCount+InitSpawnCount,
		r.ActionCount > 0 && r.SpawnCount != r.ActionCount+InitSpawnCount:
		return fmt.Errorf("t2048: %d spawns for %d actions: %w", r.SpawnCount, r.ActionCount, ErrInvalidRecord)
	case r.Mode != ModePlay && r.Mode != ModeReplay:
		return fmt.Errorf("t2048: mode %d: %w", r.Mode, ErrInvalidRecord)
	case r.ReplayCursor < 0 || r.ReplayCursor > r.ActionCount:
		return fmt.Errorf("t2048: replay cursor %d: %w", r.ReplayCursor, ErrInvalidRecord)
	case r.Score < 0 || r.MaxNumber < 0 || r.HistoryMaxNumber < 0:
		return fmt.Errorf("t2048: negative counters: %w", ErrInvalidRecord)
	}

	for i, v := range r.Board {
		if v < 0 || v == 1 || v&(v-1) != 0 {
			return fmt.Errorf("t2048: cell %d holds %d: %w", i, v, ErrInvalidRecord)
		}
	}
	for i := range r.ActionCount {
		if !Direction(r.ActionLog[i]).Valid() {
			return fmt.Errorf("t2048: action %d is %d: %w", i, r.ActionLog[i], ErrInvalidRecord)
		}
	}
	for i := range r.SpawnCount {
		if DecodeSpawn(r.SpawnLog[i]).Cell >= cells {
			return fmt.Errorf("t2048: spawn %d outside board: %w", i, ErrInvalidRecord)
		}
	}
	if missing := int(r.ActionCount + InitSpawnCount - r.SpawnCount); missing > 0 {
		free := 0
		for _, v := range r.Board {
			if v == 0 {
				free++
			}
		}
		if free < missing {
			return fmt.Errorf("t2048: %d free cells for %d initial tiles: %w", free, missing, ErrInvalidRecord)
		}
	}
	return nil
}

// session is the mutable state owned by an Engine.
type session struct {
	probabilityOfFour float64
	column            int
	score             int
	board             []int

	spawnLog    []byte
	spawnCount  int
	actionLog   []byte
	actionCount int

	mode         Mode
	replayCursor int

	maxNumber        int
	historyMaxNumber int
	startTimeMillis  int64
	initialized      bool
}

// appendLog writes b at position n, overwriting bytes left behind by a
// rollback and growing the buffer in historyChunk steps.
func appendLog(log []byte, n int, b byte) []byte {
	if n < len(log) {
		log[n] = b
		return log
	}
	if len(log) == cap(log) {
		log = slices.Grow(log, historyChunk)
	}
	return append(log, b)
}

func (s *session) recordAction(dir Direction) {
	s.actionLog = appendLog(s.actionLog, s.actionCount, byte(dir))
	s.actionCount++
}

func (s *session) recordSpawn(code byte) {
	s.spawnLog = appendLog(s.spawnLog, s.spawnCount, code)
	s.spawnCount++
}

// raiseMax applies a newly merged value to the session and history maxima.
func (s *session) raiseMax(number int) {
	if number > s.maxNumber {
		s.maxNumber = number
	}
	if s.maxNumber > s.historyMaxNumber {
		s.historyMaxNumber = s.maxNumber
	}
}

func (s *session) toRecord() Record {
	board := make([]int32, len(s.board))
	for i, v := range s.board {
		board[i] = int32(v)
	}
	return Record{
		ProbabilityOfFour:    s.probabilityOfFour,
		Column:               int32(s.column),
		Score:                int32(s.score),
		Board:                board,
		SpawnLog:             slices.Clone(s.spawnLog),
		SpawnCount:           int32(s.spawnCount),
		ActionLog:            slices.Clone(s.actionLog),
		ActionCount:          int32(s.actionCount),
		Mode:                 s.mode,
		ReplayCursor:         int32(s.replayCursor),
		MaxNumber:            int32(s.maxNumber),
		HistoryMaxNumber:     int32(s.historyMaxNumber),
		StartTimeEpochMillis: s.startTimeMillis,
		Initialized:          s.initialized,
	}
}

func sessionFromRecord(r Record) session {
	s := session{
		probabilityOfFour: r.ProbabilityOfFour,
		column:            int(r.Column),
		score:             int(r.Score),
		spawnLog:          slices.Clone(r.SpawnLog),
		spawnCount:        int(r.SpawnCount),
		actionLog:         slices.Clone(r.ActionLog),
		actionCount:       int(r.ActionCount),
		mode:              r.Mode,
		replayCursor:      int(r.ReplayCursor),
		maxNumber:         int(r.MaxNumber),
		historyMaxNumber:  int(r.HistoryMaxNumber),
		startTimeMillis:   r.StartTimeEpochMillis,
		initialized:       r.Initialized,
	}
	if r.Board != nil {
		s.board = make([]int, len(r.Board))
		for i, v := range r.Board {
			s.board[i] = int(v)
		}
	}
	return s
}
