package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tile2048/internal/games/t2048"
)

// ErrSessionNotFound is returned when no session matches a lookup.
var ErrSessionNotFound = errors.New("session not found")

// SessionMeta identifies a stored session.
type SessionMeta struct {
	ID        string
	Owner     string // Local user or SSH user name
	Variant   string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionSummary is one row of the session archive list.
type SessionSummary struct {
	SessionMeta
	Score       int
	MaxNumber   int
	ActionCount int
	StartTime   time.Time
}

const sessionColumns = `id, owner, variant, archived, probability_of_four, board_column, score,
	board, spawn_log, spawn_count, action_log, action_count, mode, replay_cursor,
	max_number, history_max_number, start_time_ms, initialized, created_at, updated_at`

// SaveSession inserts or replaces the stored copy of a session.
// CreatedAt is kept from the first save.
func (s *Store) SaveSession(meta SessionMeta, rec t2048.Record) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (
			id, owner, variant, archived, probability_of_four, board_column, score,
			board, spawn_log, spawn_count, action_log, action_count, mode, replay_cursor,
			max_number, history_max_number, start_time_ms, initialized
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner = excluded.owner,
			variant = excluded.variant,
			archived = excluded.archived,
			probability_of_four = excluded.probability_of_four,
			board_column = excluded.board_column,
			score = excluded.score,
			board = excluded.board,
			spawn_log = excluded.spawn_log,
			spawn_count = excluded.spawn_count,
			action_log = excluded.action_log,
			action_count = excluded.action_count,
			mode = excluded.mode,
			replay_cursor = excluded.replay_cursor,
			max_number = excluded.max_number,
			history_max_number = excluded.history_max_number,
			start_time_ms = excluded.start_time_ms,
			initialized = excluded.initialized,
			updated_at = CURRENT_TIMESTAMP`,
		meta.ID, meta.Owner, meta.Variant, meta.Archived,
		rec.ProbabilityOfFour, rec.Column, rec.Score,
		encodeBoard(rec.Board), rec.SpawnLog, rec.SpawnCount, rec.ActionLog, rec.ActionCount,
		int32(rec.Mode), rec.ReplayCursor,
		rec.MaxNumber, rec.HistoryMaxNumber, rec.StartTimeEpochMillis, rec.Initialized,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session %s: %w", meta.ID, err)
	}
	return nil
}

// LoadSession returns a stored session by ID.
func (s *Store) LoadSession(id string) (SessionMeta, t2048.Record, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	meta, rec, err := scanSession(row)
	if isNoRows(err) {
		return meta, rec, fmt.Errorf("storage: session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return meta, rec, fmt.Errorf("storage: cannot load session %s: %w", id, err)
	}
	return meta, rec, nil
}

// ActiveSession returns the owner's most recently updated unarchived session.
func (s *Store) ActiveSession(owner string) (SessionMeta, t2048.Record, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE owner = ? AND archived = 0
		 ORDER BY updated_at DESC, start_time_ms DESC
		 LIMIT 1`,
		owner,
	)
	meta, rec, err := scanSession(row)
	if isNoRows(err) {
		return meta, rec, fmt.Errorf("storage: active session of %q: %w", owner, ErrSessionNotFound)
	}
	if err != nil {
		return meta, rec, fmt.Errorf("storage: cannot load active session: %w", err)
	}
	return meta, rec, nil
}

// ArchiveSession marks a session as finished so it is no longer resumed.
func (s *Store) ArchiveSession(id string) error {
	res, err := s.db.Exec(
		`UPDATE sessions SET archived = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot archive session %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot archive session %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("storage: session %s: %w", id, ErrSessionNotFound)
	}
	return nil
}

// ListSessions returns an owner's sessions, newest first.
// An empty owner lists every session.
func (s *Store) ListSessions(owner string, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, owner, variant, archived, score, max_number, action_count,
		        start_time_ms, created_at, updated_at
		 FROM sessions
		 WHERE ? = '' OR owner = ?
		 ORDER BY start_time_ms DESC, created_at DESC
		 LIMIT ?`,
		owner, owner, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var list []SessionSummary
	for rows.Next() {
		var ss SessionSummary
		var startMillis int64
		var createdAt, updatedAt any
		if err := rows.Scan(
			&ss.ID, &ss.Owner, &ss.Variant, &ss.Archived,
			&ss.Score, &ss.MaxNumber, &ss.ActionCount,
			&startMillis, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan session row: %w", err)
		}
		ss.StartTime = time.UnixMilli(startMillis)
		ss.CreatedAt = parseTimestamp(createdAt)
		ss.UpdatedAt = parseTimestamp(updatedAt)
		list = append(list, ss)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return list, nil
}

// HistoryMaxNumber returns the largest tile the owner has reached in any session.
func (s *Store) HistoryMaxNumber(owner string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COALESCE(MAX(MAX(max_number, history_max_number)), 0) FROM sessions WHERE owner = ?`,
		owner,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query history max: %w", err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (SessionMeta, t2048.Record, error) {
	var meta SessionMeta
	var rec t2048.Record
	var board []byte
	var mode int32
	var createdAt, updatedAt any

	err := row.Scan(
		&meta.ID, &meta.Owner, &meta.Variant, &meta.Archived,
		&rec.ProbabilityOfFour, &rec.Column, &rec.Score,
		&board, &rec.SpawnLog, &rec.SpawnCount, &rec.ActionLog, &rec.ActionCount,
		&mode, &rec.ReplayCursor,
		&rec.MaxNumber, &rec.HistoryMaxNumber, &rec.StartTimeEpochMillis, &rec.Initialized,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return meta, rec, err
	}

	rec.Mode = t2048.Mode(mode)
	rec.Board, err = decodeBoard(board)
	if err != nil {
		return meta, rec, err
	}
	meta.CreatedAt = parseTimestamp(createdAt)
	meta.UpdatedAt = parseTimestamp(updatedAt)
	return meta, rec, nil
}

// encodeBoard packs cells as little-endian int32 values.
func encodeBoard(board []int32) []byte {
	if board == nil {
		return nil
	}
	buf := make([]byte, 0, 4*len(board))
	for _, v := range board {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	return buf
}

func decodeBoard(buf []byte) ([]int32, error) {
	if buf == nil {
		return nil, nil
	}
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("board blob of %d bytes is not a whole number of cells", len(buf))
	}
	board := make([]int32, len(buf)/4)
	for i := range board {
		board[i] = int32(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return board, nil
}
