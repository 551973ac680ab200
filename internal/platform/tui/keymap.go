package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile2048/internal/core"
)

// KeyMap holds the key bindings of the game screen.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Undo    key.Binding
	Review  key.Binding
	Confirm key.Binding
	Back    key.Binding
	NewGame key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "backspace"),
			key.WithHelp("u", "undo"),
		),
		Review: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "review"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play from here"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key press to a semantic action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Undo):
		return core.ActionUndo
	case key.Matches(msg, k.Review):
		return core.ActionReview
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.NewGame):
		return core.ActionNewGame
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

// ShortHelp implements help.KeyMap for play mode.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.Review, k.NewGame, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap for play mode.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Undo, k.Review, k.NewGame},
		{k.Back, k.Help, k.Quit},
	}
}

// replayKeys presents the same bindings with their review-mode meaning.
type replayKeys struct {
	prev, next, resume, leave, quit key.Binding
}

func newReplayKeys(k KeyMap) replayKeys {
	return replayKeys{
		prev:   key.NewBinding(key.WithKeys(k.Left.Keys()...), key.WithHelp("←", "previous")),
		next:   key.NewBinding(key.WithKeys(k.Right.Keys()...), key.WithHelp("→", "next")),
		resume: k.Confirm,
		leave:  key.NewBinding(key.WithKeys(k.Back.Keys()...), key.WithHelp("esc", "continue game")),
		quit:   k.Quit,
	}
}

func (r replayKeys) ShortHelp() []key.Binding {
	return []key.Binding{r.prev, r.next, r.resume, r.leave, r.quit}
}

func (r replayKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{r.ShortHelp()}
}

// menuKeys are the bindings of list screens.
type menuKeys struct {
	Up, Down, Select, Scores, Back, Quit key.Binding
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "high scores")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Back}}
}
