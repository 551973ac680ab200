package t2048

import (
	"fmt"
	"slices"
)

// History is the sequence of boards reconstructed from the session logs.
// Boards[i] and Scores[i] are the state after i moves; index 0 is the
// board holding only the initial tiles.
type History struct {
	Boards [][]int
	Scores []int
}

// Len returns the number of snapshots.
func (h History) Len() int {
	return len(h.Boards)
}

// reconstruct replays the first actionCount moves of the logs onto an empty
// board. It only reads the session.
func (e *Engine) reconstruct(actionCount int) (History, error) {
	s := &e.s
	if !s.initialized {
		return History{}, fmt.Errorf("t2048: history: %w", ErrNotInitialized)
	}
	if err := check(e.logger, s.spawnCount >= actionCount+InitSpawnCount,
		"%d spawns recorded for %d actions", s.spawnCount, actionCount); err != nil {
		return History{}, err
	}

	h := History{
		Boards: make([][]int, 0, actionCount+1),
		Scores: make([]int, 0, actionCount+1),
	}
	board := make([]int, s.column*s.column)

	for i := range InitSpawnCount {
		tile := DecodeSpawn(s.spawnLog[i])
		if err := check(e.logger, place(board, tile), "initial spawn %d at cell %d", i, tile.Cell); err != nil {
			return History{}, err
		}
	}
	h.Boards = append(h.Boards, slices.Clone(board))
	h.Scores = append(h.Scores, 0)

	score := 0
	for i := range actionCount {
		dir := Direction(s.actionLog[i])
		if err := check(e.logger, dir.Valid(), "action %d is %d", i, s.actionLog[i]); err != nil {
			return History{}, err
		}
		score += e.action.Execute(board, dir).ScoreGained

		tile := DecodeSpawn(s.spawnLog[InitSpawnCount+i])
		if err := check(e.logger, place(board, tile), "spawn after action %d at cell %d", i, tile.Cell); err != nil {
			return History{}, err
		}
		h.Boards = append(h.Boards, slices.Clone(board))
		h.Scores = append(h.Scores, score)
	}

	return h, nil
}

// History rebuilds every intermediate board from the logs and verifies that
// the final snapshot matches the live board and score.
func (e *Engine) History() (History, error) {
	h, err := e.reconstruct(e.s.actionCount)
	if err != nil {
		return History{}, err
	}

	last := h.Len() - 1
	if err := check(e.logger, slices.Equal(h.Boards[last], e.s.board),
		"replayed board differs from live board after %d actions", e.s.actionCount); err != nil {
		return History{}, err
	}
	if err := check(e.logger, h.Scores[last] == e.s.score,
		"replayed score %d differs from live score %d", h.Scores[last], e.s.score); err != nil {
		return History{}, err
	}
	return h, nil
}

// Rollback forks the game at the given step: moves from step onward are
// discarded and the next move overwrites them in the logs.
// Valid steps are 0 <= step < ActionCount.
func (e *Engine) Rollback(step int) error {
	s := &e.s
	if !s.initialized {
		return fmt.Errorf("t2048: rollback: %w", ErrNotInitialized)
	}
	if step < 0 || step >= s.actionCount {
		return fmt.Errorf("t2048: rollback to %d of %d: %w", step, s.actionCount, ErrStepOutOfRange)
	}

	// The live board is what is being discarded, so it is not checked.
	h, err := e.reconstruct(step)
	if err != nil {
		return err
	}

	from := s.actionCount
	s.actionCount = step
	s.spawnCount = step + InitSpawnCount
	s.board = h.Boards[step]
	s.score = h.Scores[step]
	s.maxNumber = MaxTile(s.board)
	s.mode = ModePlay
	s.replayCursor = min(s.replayCursor, step)
	e.history = nil

	if e.logger != nil {
		e.logger.Debug("rolled back", "from", from, "to", step, "score", s.score)
	}
	return nil
}

// Undo discards the last move.
func (e *Engine) Undo() error {
	return e.Rollback(e.s.actionCount - 1)
}

// EnterReplay switches to REPLAY mode and returns the reconstructed history.
// A cursor left at 0 or past the last move is placed on the last move.
func (e *Engine) EnterReplay() (History, error) {
	h, err := e.History()
	if err != nil {
		return History{}, err
	}

	s := &e.s
	if s.replayCursor == 0 || s.replayCursor >= s.actionCount {
		s.replayCursor = max(s.actionCount-1, 0)
	}
	s.mode = ModeReplay
	e.history = &h
	return h, nil
}

// LeaveReplay returns to PLAY mode without changing the game.
func (e *Engine) LeaveReplay() {
	e.s.mode = ModePlay
	e.history = nil
}

// replayHistory returns the cached history, rebuilding it for sessions
// restored in REPLAY mode.
func (e *Engine) replayHistory() (*History, error) {
	if e.s.mode != ModeReplay {
		return nil, fmt.Errorf("t2048: replay: %w", ErrNotReplaying)
	}
	if e.history == nil {
		h, err := e.History()
		if err != nil {
			return nil, err
		}
		e.history = &h
	}
	return e.history, nil
}

// ReplayCursor returns the history index shown in REPLAY mode.
func (e *Engine) ReplayCursor() int {
	return e.s.replayCursor
}

// StepReplay moves the cursor by delta, wrapping around [0, ActionCount].
func (e *Engine) StepReplay(delta int) error {
	if _, err := e.replayHistory(); err != nil {
		return err
	}
	n := e.s.actionCount + 1
	e.s.replayCursor = ((e.s.replayCursor+delta)%n + n) % n
	return nil
}

// ReplaySnapshot returns the board and score at the cursor.
func (e *Engine) ReplaySnapshot() ([]int, int, error) {
	h, err := e.replayHistory()
	if err != nil {
		return nil, 0, err
	}
	c := e.s.replayCursor
	return slices.Clone(h.Boards[c]), h.Scores[c], nil
}

// CanRollbackHere reports whether the cursor is on a step that can be
// resumed from. The last snapshot is the live game and needs no rollback.
func (e *Engine) CanRollbackHere() bool {
	return e.s.mode == ModeReplay && e.s.replayCursor < e.s.actionCount
}

// RollbackToCursor resumes play from the snapshot under the cursor.
func (e *Engine) RollbackToCursor() error {
	if e.s.mode != ModeReplay {
		return fmt.Errorf("t2048: rollback to cursor: %w", ErrNotReplaying)
	}
	return e.Rollback(e.s.replayCursor)
}
