package t2048

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures a new or restored engine.
type Options struct {
	Column            int
	ProbabilityOfFour float64
	HistoryMaxNumber  int // Carried over from earlier sessions

	Rand   *rand.Rand       // Spawn source; nil means time-seeded
	Logger *log.Logger      // Optional
	Now    func() time.Time // Clock for the start time; nil means time.Now
}

// Engine owns one game session and is the only way to mutate it.
// It is not safe for concurrent use; hosts must serialize access.
type Engine struct {
	s       session
	action  *Action
	spawner *Spawner
	logger  *log.Logger
	now     func() time.Time

	// history caches the reconstruction built by EnterReplay.
	history *History
}

// Cue is the feedback category of a move, for hosts that play sounds or
// flash the screen.
type Cue int

const (
	CueNone Cue = iota
	CueSlide
	CueMerge
	CueGameOver
)

// MoveResult reports what a move did.
type MoveResult struct {
	MoveOutcome
	Spawn    TileSpawn
	Spawned  bool
	Terminal bool
}

// Cue maps the result to a feedback category.
func (r MoveResult) Cue() Cue {
	switch {
	case r.Terminal:
		return CueGameOver
	case r.Changed && r.ScoreGained > 0:
		return CueMerge
	case r.Changed:
		return CueSlide
	default:
		return CueNone
	}
}

// NewSession starts a fresh game: an empty board with InitSpawnCount tiles.
func NewSession(opts Options) (*Engine, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	e := newEngine(opts)
	e.s = session{
		probabilityOfFour: opts.ProbabilityOfFour,
		column:            opts.Column,
		historyMaxNumber:  opts.HistoryMaxNumber,
	}
	if err := e.initialize(); err != nil {
		return nil, err
	}
	return e, nil
}

// Restore rebuilds an engine from a persisted record. Uninitialized records
// start a new game with the record's settings.
func Restore(rec Record, opts Options) (*Engine, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	opts.Column = int(rec.Column)
	opts.ProbabilityOfFour = rec.ProbabilityOfFour
	e := newEngine(opts)
	e.s = sessionFromRecord(rec)

	if !e.s.initialized {
		if opts.HistoryMaxNumber > e.s.historyMaxNumber {
			e.s.historyMaxNumber = opts.HistoryMaxNumber
		}
		if err := e.initialize(); err != nil {
			return nil, err
		}
		return e, nil
	}

	// Place initial tiles that were never spawned
	for e.s.spawnCount-e.s.actionCount < InitSpawnCount {
		placed, err := e.spawn(e.s.board)
		if err != nil {
			return nil, err
		}
		if !placed {
			return nil, fmt.Errorf("t2048: no free cell for initial tile %d: %w", e.s.spawnCount, ErrInvalidRecord)
		}
	}
	return e, nil
}

func validateOptions(opts Options) error {
	if opts.Column < MinColumn || opts.Column > MaxColumn {
		return fmt.Errorf("t2048: column %d: %w", opts.Column, ErrInvalidColumn)
	}
	if opts.ProbabilityOfFour < 0 || opts.ProbabilityOfFour > 1 {
		return fmt.Errorf("t2048: probability %v: %w", opts.ProbabilityOfFour, ErrInvalidProbability)
	}
	return nil
}

func newEngine(opts Options) *Engine {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		action:  NewAction(opts.Column),
		spawner: NewSpawner(opts.Rand),
		logger:  opts.Logger,
		now:     now,
	}
}

// initialize clears the board and spawns the initial tiles.
func (e *Engine) initialize() error {
	s := &e.s
	s.startTimeMillis = e.now().UnixMilli()
	s.score = 0
	s.board = make([]int, s.column*s.column)
	s.spawnLog = make([]byte, 0, historyChunk)
	s.spawnCount = 0
	s.actionLog = make([]byte, 0, historyChunk)
	s.actionCount = 0
	s.mode = ModePlay
	s.replayCursor = 0
	s.maxNumber = 2 // Spawns are 2 or 4; 2 is the assumed starting max
	s.initialized = true

	for range InitSpawnCount {
		if _, err := e.spawn(s.board); err != nil {
			return err
		}
	}
	return nil
}

// spawn places a random tile on board and records it. It reports false
// when the board has no empty cell.
func (e *Engine) spawn(board []int) (bool, error) {
	tile, ok := e.spawner.Spawn(board, e.s.probabilityOfFour)
	if !ok {
		return false, nil
	}
	code, err := EncodeSpawn(tile, len(board))
	if err != nil {
		return false, err
	}
	e.s.recordSpawn(code)
	return true, nil
}

// Move applies a move in PLAY mode. A move that changes nothing commits
// nothing and is not an error.
func (e *Engine) Move(dir Direction) (MoveResult, error) {
	var result MoveResult
	if !e.s.initialized {
		return result, fmt.Errorf("t2048: move: %w", ErrNotInitialized)
	}
	if e.s.mode != ModePlay {
		return result, fmt.Errorf("t2048: move: %w", ErrReplayMode)
	}
	if !dir.Valid() {
		return result, fmt.Errorf("t2048: move direction %d: %w", dir, ErrInvariant)
	}

	board := slices.Clone(e.s.board)
	result.MoveOutcome = e.action.Execute(board, dir)
	if !result.Changed {
		return result, nil
	}

	// A changing move leaves an empty cell.
	tile, ok := e.spawner.Spawn(board, e.s.probabilityOfFour)
	if err := check(e.logger, ok, "no empty cell after %s", dir); err != nil {
		return MoveResult{}, err
	}
	code, err := EncodeSpawn(tile, len(board))
	if err != nil {
		return MoveResult{}, err
	}

	s := &e.s
	s.board = board
	s.score += result.ScoreGained
	s.raiseMax(result.MergedMax)
	s.recordAction(dir)
	s.recordSpawn(code)

	result.Spawn = tile
	result.Spawned = true
	result.Terminal = e.IsTerminal()
	return result, nil
}

// IsTerminal reports whether no move can change the board.
// The live board is never touched.
func (e *Engine) IsTerminal() bool {
	if HasEmptyCell(e.s.board) {
		return false
	}

	scratch := slices.Clone(e.s.board)
	for _, dir := range Directions() {
		if e.action.Execute(scratch, dir).Changed {
			return false
		}
	}
	return true
}

// NewGame starts a fresh session with the same settings, carrying over the
// history max number.
func (e *Engine) NewGame(rng *rand.Rand) (*Engine, error) {
	return NewSession(Options{
		Column:            e.s.column,
		ProbabilityOfFour: e.s.probabilityOfFour,
		HistoryMaxNumber:  e.s.historyMaxNumber,
		Rand:              rng,
		Logger:            e.logger,
		Now:               e.now,
	})
}

// Board returns a copy of the live board.
func (e *Engine) Board() []int {
	return slices.Clone(e.s.board)
}

// Column returns the board dimension.
func (e *Engine) Column() int {
	return e.s.column
}

// Score returns the live score.
func (e *Engine) Score() int {
	return e.s.score
}

// MaxNumber returns the highest tile reached in this session.
func (e *Engine) MaxNumber() int {
	return e.s.maxNumber
}

// HistoryMaxNumber returns the highest tile reached across sessions.
func (e *Engine) HistoryMaxNumber() int {
	return e.s.historyMaxNumber
}

// ActionCount returns the number of committed moves.
func (e *Engine) ActionCount() int {
	return e.s.actionCount
}

// SpawnCount returns the number of recorded spawns.
func (e *Engine) SpawnCount() int {
	return e.s.spawnCount
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode {
	return e.s.mode
}

// ProbabilityOfFour returns the spawn probability of a 4.
func (e *Engine) ProbabilityOfFour() float64 {
	return e.s.probabilityOfFour
}

// StartTime returns when the session was initialized.
func (e *Engine) StartTime() time.Time {
	return time.UnixMilli(e.s.startTimeMillis)
}

// Record returns a persistable copy of the session.
func (e *Engine) Record() Record {
	return e.s.toRecord()
}
