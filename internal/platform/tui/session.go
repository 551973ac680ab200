package tui

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tile2048/internal/games/t2048"
	"github.com/vovakirdan/tile2048/internal/registry"
	"github.com/vovakirdan/tile2048/internal/storage"
)

// Settings are the per-game knobs taken from the config file and CLI flags.
type Settings struct {
	ProbabilityOfFour float64
	Seed              int64 // 0 means time-seeded
}

// Session binds an engine to its stored row. A nil store runs the game
// in memory only.
type Session struct {
	Engine *t2048.Engine
	Meta   storage.SessionMeta

	store  *storage.Store
	logger *log.Logger
	rng    *rand.Rand
	scored bool
}

func (s Settings) rand() *rand.Rand {
	if s.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(s.Seed))
}

// OpenSession resumes the owner's active session when it is for the same
// variant. Otherwise the old session is finished and a new one started.
func OpenSession(store *storage.Store, owner string, variant registry.Variant, settings Settings, logger *log.Logger) (*Session, error) {
	s := &Session{
		store:  store,
		logger: logger,
		rng:    settings.rand(),
	}

	if store != nil {
		meta, rec, err := store.ActiveSession(owner)
		switch {
		case err == nil && meta.Variant == variant.ID:
			engine, err := t2048.Restore(rec, s.engineOptions(0))
			if err != nil {
				return nil, fmt.Errorf("tui: cannot resume session %s: %w", meta.ID, err)
			}
			s.Engine = engine
			s.Meta = meta
			s.log().Info("resumed session", "id", meta.ID, "variant", variant.ID, "actions", engine.ActionCount())
			return s, nil
		case err == nil:
			prev := &Session{store: store, logger: logger, Meta: meta}
			if engine, rerr := t2048.Restore(rec, t2048.Options{}); rerr == nil {
				prev.Engine = engine
			}
			prev.Finish()
		case !errors.Is(err, storage.ErrSessionNotFound):
			s.log().Warn("could not read active session", "owner", owner, "error", err)
		}
	}

	historyMax := 0
	if store != nil {
		if n, err := store.HistoryMaxNumber(owner); err == nil {
			historyMax = n
		}
	}

	opts := s.engineOptions(historyMax)
	opts.Column = variant.Column
	opts.ProbabilityOfFour = settings.ProbabilityOfFour
	engine, err := t2048.NewSession(opts)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot start %s: %w", variant.ID, err)
	}

	s.Engine = engine
	s.Meta = storage.SessionMeta{ID: uuid.NewString(), Owner: owner, Variant: variant.ID}
	s.log().Info("started session", "id", s.Meta.ID, "variant", variant.ID)
	s.Save()
	return s, nil
}

// LoadSession opens a stored session by ID, archived or not.
func LoadSession(store *storage.Store, id string, logger *log.Logger) (*Session, error) {
	meta, rec, err := store.LoadSession(id)
	if err != nil {
		return nil, err
	}
	s := &Session{store: store, logger: logger, Meta: meta, scored: meta.Archived}
	engine, err := t2048.Restore(rec, s.engineOptions(0))
	if err != nil {
		return nil, fmt.Errorf("tui: cannot restore session %s: %w", id, err)
	}
	s.Engine = engine
	return s, nil
}

func (s *Session) engineOptions(historyMax int) t2048.Options {
	return t2048.Options{
		HistoryMaxNumber: historyMax,
		Rand:             s.rng,
		Logger:           s.logger,
	}
}

func (s *Session) log() *log.Logger {
	if s.logger == nil {
		return log.Default()
	}
	return s.logger
}

// Save writes the session to the store. Errors are logged; the game
// keeps running without persistence.
func (s *Session) Save() {
	if s.store == nil {
		return
	}
	if err := s.store.SaveSession(s.Meta, s.Engine.Record()); err != nil {
		s.log().Warn("could not save session", "id", s.Meta.ID, "error", err)
	}
}

// RecordScore adds the session to the high-score table. Only the first
// call per session records anything.
func (s *Session) RecordScore() {
	if s.store == nil || s.scored {
		return
	}
	s.scored = true

	if s.Engine == nil || s.Engine.ActionCount() == 0 {
		return
	}
	if _, err := s.store.SaveScore(s.Meta.Variant, s.Engine.Score(), s.Engine.MaxNumber()); err != nil {
		s.log().Warn("could not save score", "variant", s.Meta.Variant, "error", err)
	}
}

// Finish records the score and archives the session so it is no longer resumed.
func (s *Session) Finish() {
	if s.store == nil {
		return
	}
	s.RecordScore()
	if s.Meta.Archived {
		return
	}
	if err := s.store.ArchiveSession(s.Meta.ID); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		s.log().Warn("could not archive session", "id", s.Meta.ID, "error", err)
	}
	s.Meta.Archived = true
}

// NewGame finishes the current session and starts a fresh one with the
// same settings under a new ID.
func (s *Session) NewGame() error {
	s.Finish()

	engine, err := s.Engine.NewGame(s.rng)
	if err != nil {
		return fmt.Errorf("tui: cannot start new game: %w", err)
	}
	s.Engine = engine
	s.Meta = storage.SessionMeta{ID: uuid.NewString(), Owner: s.Meta.Owner, Variant: s.Meta.Variant}
	s.scored = false
	s.Save()
	return nil
}

// Variant returns the session's registry entry.
func (s *Session) Variant() registry.Variant {
	if v, err := registry.Get(s.Meta.Variant); err == nil {
		return v
	}
	return t2048.Variant(s.Engine.Column())
}
