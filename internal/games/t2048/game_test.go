package t2048

import (
	"errors"
	"math/rand"
	"reflect"
	"slices"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, column int, seed int64) *Engine {
	t.Helper()
	e, err := NewSession(Options{
		Column:            column,
		ProbabilityOfFour: DefaultProbabilityOfFour,
		Rand:              rand.New(rand.NewSource(seed)),
		Now:               func() time.Time { return time.UnixMilli(1700000000000) },
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return e
}

// changingDirection returns a direction that changes the live board.
func changingDirection(e *Engine) (Direction, bool) {
	for _, dir := range Directions() {
		board := e.Board()
		if e.action.Execute(board, dir).Changed {
			return dir, true
		}
	}
	return 0, false
}

// playMoves commits up to n changing moves, stopping early on a terminal board.
func playMoves(t *testing.T, e *Engine, rng *rand.Rand, n int) {
	t.Helper()
	for range n {
		dirs := Directions()
		rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

		moved := false
		for _, dir := range dirs {
			res, err := e.Move(dir)
			if err != nil {
				t.Fatalf("Move(%s): %v", dir, err)
			}
			if res.Changed {
				moved = true
				break
			}
		}
		if !moved {
			return
		}
	}
}

func countTiles(board []int) int {
	n := 0
	for _, v := range board {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestNewSession(t *testing.T) {
	e, err := NewSession(Options{
		Column:            4,
		ProbabilityOfFour: DefaultProbabilityOfFour,
		HistoryMaxNumber:  512,
		Rand:              rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if len(e.Board()) != 16 {
		t.Errorf("board has %d cells, want 16", len(e.Board()))
	}
	if n := countTiles(e.Board()); n != InitSpawnCount {
		t.Errorf("board has %d tiles, want %d", n, InitSpawnCount)
	}
	if e.SpawnCount() != InitSpawnCount || e.ActionCount() != 0 {
		t.Errorf("counts = %d spawns, %d actions", e.SpawnCount(), e.ActionCount())
	}
	if e.Score() != 0 {
		t.Errorf("Score() = %d, want 0", e.Score())
	}
	if e.MaxNumber() != 2 {
		t.Errorf("MaxNumber() = %d, want 2", e.MaxNumber())
	}
	if e.HistoryMaxNumber() != 512 {
		t.Errorf("HistoryMaxNumber() = %d, want 512", e.HistoryMaxNumber())
	}
	if e.Mode() != ModePlay {
		t.Errorf("Mode() = %s, want play", e.Mode())
	}
}

func TestNewSessionStartTime(t *testing.T) {
	e := newTestEngine(t, 4, 1)
	if got := e.StartTime().UnixMilli(); got != 1700000000000 {
		t.Errorf("StartTime() = %d", got)
	}
}

func TestNewSessionRejectsOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"column too small", Options{Column: 1, ProbabilityOfFour: 0.25}, ErrInvalidColumn},
		{"column too large", Options{Column: 9, ProbabilityOfFour: 0.25}, ErrInvalidColumn},
		{"negative probability", Options{Column: 4, ProbabilityOfFour: -0.1}, ErrInvalidProbability},
		{"probability above one", Options{Column: 4, ProbabilityOfFour: 1.5}, ErrInvalidProbability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewSession error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMoveCommits(t *testing.T) {
	e := newTestEngine(t, 4, 5)
	dir, ok := changingDirection(e)
	if !ok {
		t.Fatal("fresh board has no changing move")
	}

	res, err := e.Move(dir)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !res.Changed || !res.Spawned {
		t.Fatalf("Move result = %+v", res)
	}
	if e.ActionCount() != 1 || e.SpawnCount() != InitSpawnCount+1 {
		t.Errorf("counts = %d actions, %d spawns", e.ActionCount(), e.SpawnCount())
	}
	if e.s.actionLog[0] != byte(dir) {
		t.Errorf("action log[0] = %d, want %d", e.s.actionLog[0], dir)
	}
	if got := DecodeSpawn(e.s.spawnLog[InitSpawnCount]); got != res.Spawn {
		t.Errorf("spawn log = %+v, want %+v", got, res.Spawn)
	}
	if e.Board()[res.Spawn.Cell] != res.Spawn.Value {
		t.Error("spawned tile not on the board")
	}
	if e.Score() != res.ScoreGained {
		t.Errorf("Score() = %d, want %d", e.Score(), res.ScoreGained)
	}
}

func TestMoveNoChange(t *testing.T) {
	e := newTestEngine(t, 4, 1)
	e.s.board = flat(
		[]int{2, 4, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	before := e.Record()

	res, err := e.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if res.Changed || res.Spawned {
		t.Errorf("Move result = %+v, want no change", res)
	}
	if res.Cue() != CueNone {
		t.Errorf("Cue() = %v, want CueNone", res.Cue())
	}
	if !reflect.DeepEqual(before, e.Record()) {
		t.Error("a move that changes nothing should commit nothing")
	}
}

func TestMoveMergeRaisesMax(t *testing.T) {
	e := newTestEngine(t, 4, 1)
	e.s.board = flat(
		[]int{64, 64, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)

	res, err := e.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if res.ScoreGained != 128 || res.MergedMax != 128 {
		t.Errorf("Move result = %+v", res)
	}
	if res.Cue() != CueMerge {
		t.Errorf("Cue() = %v, want CueMerge", res.Cue())
	}
	if e.MaxNumber() != 128 || e.HistoryMaxNumber() != 128 {
		t.Errorf("max = %d, history max = %d", e.MaxNumber(), e.HistoryMaxNumber())
	}
}

func TestMoveRejected(t *testing.T) {
	e := newTestEngine(t, 4, 1)

	if _, err := e.Move(Direction(7)); !errors.Is(err, ErrInvariant) {
		t.Errorf("Move(7) error = %v, want ErrInvariant", err)
	}

	var empty Engine
	if _, err := empty.Move(DirLeft); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Move on zero engine error = %v, want ErrNotInitialized", err)
	}
}

func TestMoveGameOver(t *testing.T) {
	e := newTestEngine(t, 2, 1)
	e.s.board = []int{
		2, 0,
		4, 8,
	}

	// The only changing move fills the last cell; the spawn decides whether
	// the board is locked, so check consistency rather than a fixed outcome.
	res, err := e.Move(DirUp)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if res.Terminal != e.IsTerminal() {
		t.Errorf("Terminal = %v, IsTerminal() = %v", res.Terminal, e.IsTerminal())
	}
	if res.Terminal && res.Cue() != CueGameOver {
		t.Errorf("Cue() = %v, want CueGameOver", res.Cue())
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name     string
		board    []int
		terminal bool
	}{
		{
			"empty cell",
			flat([]int{2, 4, 2, 4}, []int{4, 2, 4, 2}, []int{2, 4, 0, 4}, []int{4, 2, 4, 2}),
			false,
		},
		{
			"checkerboard",
			flat([]int{2, 4, 2, 4}, []int{4, 2, 4, 2}, []int{2, 4, 2, 4}, []int{4, 2, 4, 2}),
			true,
		},
		{
			"horizontal pair",
			flat([]int{2, 2, 8, 4}, []int{4, 8, 4, 2}, []int{2, 4, 2, 4}, []int{4, 2, 4, 2}),
			false,
		},
		{
			"vertical pair",
			flat([]int{2, 4, 2, 4}, []int{4, 8, 16, 2}, []int{2, 8, 2, 4}, []int{4, 2, 4, 2}),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 4, 1)
			e.s.board = slices.Clone(tt.board)

			if got := e.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
			if !slices.Equal(e.s.board, tt.board) {
				t.Error("IsTerminal modified the board")
			}
		})
	}
}

func TestIsTerminalMatchesMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for range 500 {
		e := newTestEngine(t, 3, 1)
		for i := range e.s.board {
			e.s.board[i] = 2 << rng.Intn(3)
		}

		anyChange := false
		for _, dir := range Directions() {
			board := e.Board()
			if e.action.Execute(board, dir).Changed {
				anyChange = true
			}
		}
		if e.IsTerminal() == anyChange {
			t.Fatalf("IsTerminal() = %v with changing move %v on %v", e.IsTerminal(), anyChange, e.s.board)
		}
	}
}

func TestRecordRestoreRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	e := newTestEngine(t, 5, 9)
	playMoves(t, e, rng, 40)

	rec := e.Record()
	restored, err := Restore(rec, Options{Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !reflect.DeepEqual(rec, restored.Record()) {
		t.Error("restored record differs from the saved one")
	}
	if _, err := restored.History(); err != nil {
		t.Errorf("History after restore: %v", err)
	}

	// The restored engine keeps playing.
	playMoves(t, restored, rng, 5)
	if _, err := restored.History(); err != nil {
		t.Errorf("History after further play: %v", err)
	}
}

func TestRecordIsACopy(t *testing.T) {
	e := newTestEngine(t, 4, 1)
	rec := e.Record()
	rec.Board[0] = 2048
	rec.SpawnLog[0] = 0x7F

	if e.s.board[0] == 2048 || e.s.spawnLog[0] == 0x7F {
		t.Error("Record shares memory with the engine")
	}
}

func TestRestoreUninitialized(t *testing.T) {
	rec := Record{Column: 3, ProbabilityOfFour: 0.1, HistoryMaxNumber: 64}
	e, err := Restore(rec, Options{Rand: rand.New(rand.NewSource(2)), HistoryMaxNumber: 256})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if !e.Record().Initialized {
		t.Error("restored record should be initialized")
	}
	if e.Column() != 3 || e.ProbabilityOfFour() != 0.1 {
		t.Errorf("settings = %d, %v", e.Column(), e.ProbabilityOfFour())
	}
	if n := countTiles(e.Board()); n != InitSpawnCount {
		t.Errorf("board has %d tiles", n)
	}
	if e.HistoryMaxNumber() != 256 {
		t.Errorf("HistoryMaxNumber() = %d, want 256", e.HistoryMaxNumber())
	}
}

func TestRestoreTopsUpInitialTiles(t *testing.T) {
	code, _ := EncodeSpawn(TileSpawn{Cell: 4, Value: 2}, 9)
	rec := Record{
		ProbabilityOfFour: 0.25,
		Column:            3,
		Board:             []int32{0, 0, 0, 0, 2, 0, 0, 0, 0},
		SpawnLog:          []byte{code},
		SpawnCount:        1,
		MaxNumber:         2,
		Initialized:       true,
	}

	e, err := Restore(rec, Options{Rand: rand.New(rand.NewSource(4))})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if e.SpawnCount() != InitSpawnCount {
		t.Errorf("SpawnCount() = %d, want %d", e.SpawnCount(), InitSpawnCount)
	}
	if n := countTiles(e.Board()); n != InitSpawnCount {
		t.Errorf("board has %d tiles", n)
	}
	if _, err := e.History(); err != nil {
		t.Errorf("History: %v", err)
	}
}

func TestRestoreFullBoardWithoutInitialTiles(t *testing.T) {
	rec := Record{
		ProbabilityOfFour: 0.25,
		Column:            2,
		Board:             []int32{2, 4, 8, 16},
		MaxNumber:         16,
		Initialized:       true,
	}

	done := make(chan error, 1)
	go func() {
		_, err := Restore(rec, Options{Rand: rand.New(rand.NewSource(1))})
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("Restore err = %v, want ErrInvalidRecord", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Restore did not return")
	}
}

func TestRecordValidate(t *testing.T) {
	valid := func() Record {
		e, _ := NewSession(Options{Column: 3, ProbabilityOfFour: 0.25, Rand: rand.New(rand.NewSource(1))})
		return e.Record()
	}

	tests := []struct {
		name   string
		mutate func(r *Record)
		want   error
	}{
		{"valid", func(r *Record) {}, nil},
		{"column", func(r *Record) { r.Column = 10 }, ErrInvalidColumn},
		{"probability", func(r *Record) { r.ProbabilityOfFour = 2 }, ErrInvalidProbability},
		{"board length", func(r *Record) { r.Board = r.Board[:4] }, ErrInvalidRecord},
		{"action count past log", func(r *Record) { r.ActionCount = 1 }, ErrInvalidRecord},
		{"spawn count past log", func(r *Record) { r.SpawnCount = 3 }, ErrInvalidRecord},
		{"too many spawns", func(r *Record) {
			r.SpawnLog = append(r.SpawnLog, 0)
			r.SpawnCount = 3
		}, ErrInvalidRecord},
		{"unknown mode", func(r *Record) { r.Mode = 5 }, ErrInvalidRecord},
		{"cursor past actions", func(r *Record) { r.ReplayCursor = 1 }, ErrInvalidRecord},
		{"cell not a power of two", func(r *Record) { r.Board[0] = 6 }, ErrInvalidRecord},
		{"cell of one", func(r *Record) { r.Board[0] = 1 }, ErrInvalidRecord},
		{"bad action byte", func(r *Record) {
			r.ActionLog = []byte{9}
			r.ActionCount = 1
			r.SpawnLog = append(r.SpawnLog, 0)
			r.SpawnCount = 3
		}, ErrInvalidRecord},
		{"spawn outside board", func(r *Record) { r.SpawnLog[0] = 0x0F }, ErrInvalidRecord},
		{"no room for initial tiles", func(r *Record) {
			r.SpawnCount = 0
			for i := range r.Board {
				r.Board[i] = 2
			}
		}, ErrInvalidRecord},
		{"uninitialized skips board", func(r *Record) {
			r.Initialized = false
			r.Board = nil
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			err := r.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewGameCarriesHistoryMax(t *testing.T) {
	e := newTestEngine(t, 4, 1)
	e.s.board = flat(
		[]int{256, 256, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	if _, err := e.Move(DirLeft); err != nil {
		t.Fatalf("Move: %v", err)
	}

	next, err := e.NewGame(rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if next.HistoryMaxNumber() != 512 {
		t.Errorf("HistoryMaxNumber() = %d, want 512", next.HistoryMaxNumber())
	}
	if next.MaxNumber() != 2 || next.Score() != 0 || next.ActionCount() != 0 {
		t.Errorf("new game state = max %d, score %d, actions %d", next.MaxNumber(), next.Score(), next.ActionCount())
	}
	if next.Column() != 4 {
		t.Errorf("Column() = %d, want 4", next.Column())
	}
}

func TestAppendLog(t *testing.T) {
	var log []byte
	for i := range historyChunk + 10 {
		log = appendLog(log, i, byte(i%4))
	}
	if len(log) != historyChunk+10 {
		t.Fatalf("len = %d", len(log))
	}
	if cap(log) < 2*historyChunk {
		t.Errorf("cap = %d, want growth in chunks", cap(log))
	}

	log = appendLog(log, 3, 0xFF)
	if log[3] != 0xFF || len(log) != historyChunk+10 {
		t.Error("appendLog should overwrite inside the buffer")
	}
}
