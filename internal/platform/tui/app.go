package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile2048/internal/storage"
)

type screen int

const (
	screenMenu screen = iota
	screenScores
	screenGame
)

// AppModel runs the whole flow in one program: menu, scoreboard and game.
// Sub-models quit their own programs when used standalone; AppModel
// swallows those quits and switches screens instead.
type AppModel struct {
	store    *storage.Store
	owner    string
	settings Settings
	logger   *log.Logger

	screen   screen
	menu     MenuModel
	scores   ScoreboardModel
	game     Model
	err      error
	width    int
	height   int
	quitting bool
}

// NewAppModel creates the top-level model for one player.
func NewAppModel(store *storage.Store, owner string, settings Settings, logger *log.Logger) AppModel {
	return AppModel{
		store:    store,
		owner:    owner,
		settings: settings,
		logger:   logger,
		menu:     NewMenuModel(store, owner, 0, 0),
	}
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenScores:
		return m.updateScores(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) resize() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: m.width, Height: m.height}
	}
}

func (m AppModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.owner, m.width, m.height)
	return m, m.resize()
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.store, "", m.width, m.height)
		return m, m.resize()

	case m.menu.Selected() != nil:
		s, err := OpenSession(m.store, m.owner, m.menu.Selected().Variant, m.settings, m.logger)
		if err != nil {
			m.err = err
			m.menu = NewMenuModel(m.store, m.owner, m.width, m.height)
			return m, nil
		}
		m.err = nil
		m.screen = screenGame
		m.game = NewModel(s)
		return m, m.resize()
	}

	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	switch {
	case m.game.Quitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.Back():
		return m.backToMenu()
	}
	return m, cmd
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenScores:
		return m.scores.View()
	case screenGame:
		return m.game.View()
	}

	if m.err != nil {
		return m.menu.View() + "\n" + centerText(overStyle.Render(m.err.Error()), m.width)
	}
	return m.menu.View()
}

// RunApp runs the full flow in one program for a local player.
func RunApp(store *storage.Store, owner string, settings Settings, logger *log.Logger) error {
	p := tea.NewProgram(NewAppModel(store, owner, settings, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
