package tui

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tile2048/internal/games/t2048"
	"github.com/vovakirdan/tile2048/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

var testSettings = Settings{ProbabilityOfFour: t2048.DefaultProbabilityOfFour, Seed: 7}

// playOne commits one changing move.
func playOne(t *testing.T, s *Session) {
	t.Helper()
	for _, dir := range t2048.Directions() {
		res, err := s.Engine.Move(dir)
		if err != nil {
			t.Fatalf("Move: %v", err)
		}
		if res.Changed {
			return
		}
	}
	t.Fatal("no direction changes the board")
}

func TestOpenSessionWithoutStore(t *testing.T) {
	s, err := OpenSession(nil, "local", t2048.Variant(5), testSettings, nil)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if s.Engine.Column() != 5 || s.Meta.Variant != "2048_5x5" {
		t.Errorf("column %d variant %q", s.Engine.Column(), s.Meta.Variant)
	}
	if s.Meta.ID == "" {
		t.Error("session should get an ID")
	}

	// Without a store these are no-ops.
	s.Save()
	s.Finish()
	if err := s.NewGame(); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
}

func TestOpenSessionResumes(t *testing.T) {
	store := openTestStore(t)

	first, err := OpenSession(store, "alice", t2048.Variant(4), testSettings, nil)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	playOne(t, first)
	playOne(t, first)
	first.Save()

	second, err := OpenSession(store, "alice", t2048.Variant(4), testSettings, nil)
	if err != nil {
		t.Fatalf("second OpenSession: %v", err)
	}
	if second.Meta.ID != first.Meta.ID {
		t.Errorf("resumed ID = %s, want %s", second.Meta.ID, first.Meta.ID)
	}
	if second.Engine.ActionCount() != 2 || second.Engine.Score() != first.Engine.Score() {
		t.Errorf("resumed %d actions, score %d", second.Engine.ActionCount(), second.Engine.Score())
	}

	other, err := OpenSession(store, "bob", t2048.Variant(4), testSettings, nil)
	if err != nil {
		t.Fatalf("OpenSession for bob: %v", err)
	}
	if other.Meta.ID == first.Meta.ID {
		t.Error("owners should not share sessions")
	}
}

func TestOpenSessionOtherVariantFinishesOld(t *testing.T) {
	store := openTestStore(t)

	old, err := OpenSession(store, "alice", t2048.Variant(4), testSettings, nil)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	playOne(t, old)
	old.Save()

	fresh, err := OpenSession(store, "alice", t2048.Variant(3), testSettings, nil)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if fresh.Meta.ID == old.Meta.ID || fresh.Engine.ActionCount() != 0 {
		t.Error("switching board should start a new session")
	}

	meta, _, err := store.LoadSession(old.Meta.ID)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if !meta.Archived {
		t.Error("old session should be archived")
	}

	scores, err := store.TopScores(t2048.DefaultVariant, 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != old.Engine.Score() {
		t.Errorf("scores = %+v", scores)
	}
}

func TestSessionNewGame(t *testing.T) {
	store := openTestStore(t)

	s, err := OpenSession(store, "alice", t2048.Variant(4), testSettings, nil)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	oldID := s.Meta.ID
	playOne(t, s)

	if err := s.NewGame(); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if s.Meta.ID == oldID || s.Engine.ActionCount() != 0 {
		t.Error("NewGame should start a new session")
	}

	active, _, err := store.ActiveSession("alice")
	if err != nil {
		t.Fatalf("ActiveSession: %v", err)
	}
	if active.ID != s.Meta.ID {
		t.Errorf("active session = %s, want %s", active.ID, s.Meta.ID)
	}
}

func TestRecordScoreOnce(t *testing.T) {
	store := openTestStore(t)

	s, err := OpenSession(store, "alice", t2048.Variant(4), testSettings, nil)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	playOne(t, s)
	s.RecordScore()
	s.RecordScore()
	s.Finish()

	scores, err := store.TopScores(t2048.DefaultVariant, 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 {
		t.Errorf("recorded %d scores, want 1", len(scores))
	}
}

func TestRecordScoreSkipsUnplayed(t *testing.T) {
	store := openTestStore(t)

	s, err := OpenSession(store, "alice", t2048.Variant(4), testSettings, nil)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	s.Finish()

	if high, err := store.HighScore(t2048.DefaultVariant); err != nil || high != 0 {
		t.Errorf("HighScore() = %d, %v", high, err)
	}
}

func TestLoadSession(t *testing.T) {
	store := openTestStore(t)

	s, err := OpenSession(store, "alice", t2048.Variant(4), testSettings, nil)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	playOne(t, s)
	s.Save()

	loaded, err := LoadSession(store, s.Meta.ID, nil)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if loaded.Engine.ActionCount() != 1 {
		t.Errorf("loaded %d actions, want 1", loaded.Engine.ActionCount())
	}

	if _, err := LoadSession(store, "missing", nil); !errors.Is(err, storage.ErrSessionNotFound) {
		t.Errorf("LoadSession(missing) error = %v", err)
	}
}
