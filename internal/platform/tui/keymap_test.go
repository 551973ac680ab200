package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile2048/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"wasd left", runeKey('a'), core.ActionLeft},
		{"vim down", runeKey('j'), core.ActionDown},
		{"undo", runeKey('u'), core.ActionUndo},
		{"review", runeKey('v'), core.ActionReview},
		{"confirm", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"new game", runeKey('n'), core.ActionNewGame},
		{"help", runeKey('?'), core.ActionHelp},
		{"quit", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.expected {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.expected)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}

	replay := newReplayKeys(keys)
	for _, b := range replay.ShortHelp() {
		if !b.Enabled() {
			t.Errorf("replay binding %q is disabled", b.Help().Key)
		}
	}
	if replay.prev.Help().Desc != "previous" || replay.next.Help().Desc != "next" {
		t.Error("replay arrows should read previous/next")
	}
}
