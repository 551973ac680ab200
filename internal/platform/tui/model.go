package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile2048/internal/core"
	"github.com/vovakirdan/tile2048/internal/games/t2048"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))
	replayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Padding(0, 1)
	overStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 2)
	statusStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("245"))
)

// hudHeight is the number of lines drawn around the board.
const hudHeight = 8

// Model is the Bubble Tea model of one game session.
type Model struct {
	session  *Session
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	status   string
	back     bool // Return to the menu
	quitting bool
}

// NewModel creates a game screen for a session.
func NewModel(s *Session) Model {
	return Model{
		session: s,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.status = m.saveScreenshot()
			return m, nil
		}
		return m.handleAction(m.keys.Action(msg))
	}
	return m, nil
}

func (m Model) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	if action != core.ActionNone {
		m.session.log().Debug("input", "action", action.String(), "mode", m.session.Engine.Mode())
	}

	switch action {
	case core.ActionQuit:
		m.session.Save()
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case core.ActionNewGame:
		if err := m.session.NewGame(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "New game"
		}
		return m, nil
	}

	if m.session.Engine.Mode() == t2048.ModeReplay {
		m.handleReplay(action)
		return m, nil
	}
	return m.handlePlay(action)
}

// moveDirection maps a move action to a board direction.
func moveDirection(action core.Action) t2048.Direction {
	switch action {
	case core.ActionRight:
		return t2048.DirRight
	case core.ActionUp:
		return t2048.DirUp
	case core.ActionDown:
		return t2048.DirDown
	default:
		return t2048.DirLeft
	}
}

func (m Model) handlePlay(action core.Action) (tea.Model, tea.Cmd) {
	e := m.session.Engine

	switch {
	case action.IsMove():
		res, err := e.Move(moveDirection(action))
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		switch res.Cue() {
		case t2048.CueNone:
			m.status = ""
			return m, nil
		case t2048.CueMerge:
			m.status = fmt.Sprintf("+%d", res.ScoreGained)
		case t2048.CueGameOver:
			m.status = "No moves left"
			m.session.RecordScore()
		default:
			m.status = ""
		}
		m.session.Save()

	case action == core.ActionUndo:
		if err := e.Undo(); err != nil {
			if errors.Is(err, t2048.ErrStepOutOfRange) {
				m.status = "Nothing to undo"
			} else {
				m.status = err.Error()
			}
			return m, nil
		}
		m.status = "Undone"
		m.session.Save()

	case action == core.ActionReview:
		if _, err := e.EnterReplay(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		m.session.Save()

	case action == core.ActionBack:
		m.session.Save()
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) handleReplay(action core.Action) {
	e := m.session.Engine

	var err error
	switch action {
	case core.ActionLeft, core.ActionUp:
		err = e.StepReplay(-1)
	case core.ActionRight, core.ActionDown:
		err = e.StepReplay(1)
	case core.ActionConfirm:
		if e.CanRollbackHere() {
			step := e.ReplayCursor()
			err = e.RollbackToCursor()
			if err == nil {
				m.status = fmt.Sprintf("Playing from move %d", step)
			}
		} else {
			e.LeaveReplay()
			m.status = ""
		}
	case core.ActionBack, core.ActionReview:
		e.LeaveReplay()
		m.status = ""
	default:
		return
	}

	if err != nil {
		m.status = err.Error()
		return
	}
	m.session.Save()
}

// saveScreenshot writes the plain board to ~/.tile2048/screenshots.
func (m Model) saveScreenshot() string {
	screen := boardScreen(m.visibleBoard(), m.session.Engine.Column(), m.gameOver())

	home, err := os.UserHomeDir()
	if err != nil {
		return err.Error()
	}
	dir := filepath.Join(home, ".tile2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err.Error()
	}

	name := fmt.Sprintf("%s_%s.txt", m.session.Meta.Variant, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(screen.String()), 0o600); err != nil {
		return err.Error()
	}
	return "Saved " + path
}

// gameOver reports whether the live game has no moves left.
func (m Model) gameOver() bool {
	e := m.session.Engine
	return e.Mode() == t2048.ModePlay && e.IsTerminal()
}

// visibleBoard is the replay snapshot in replay mode and the live board otherwise.
func (m Model) visibleBoard() []int {
	e := m.session.Engine
	if e.Mode() == t2048.ModeReplay {
		if board, _, err := e.ReplaySnapshot(); err == nil {
			return board
		}
	}
	return e.Board()
}

func (m Model) visibleScore() int {
	e := m.session.Engine
	if e.Mode() == t2048.ModeReplay {
		if _, score, err := e.ReplaySnapshot(); err == nil {
			return score
		}
	}
	return e.Score()
}

func stat(label string, value int) string {
	return labelStyle.Render(label+" ") + valueStyle.Render(fmt.Sprint(value))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	e := m.session.Engine
	boardW, boardH := t2048.BoardSize(e.Column())
	if m.width > 0 && (m.width < boardW || m.height < boardH+hudHeight) {
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d",
			boardW, boardH+hudHeight, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.session.Variant().Title))
	b.WriteString("\n\n")

	b.WriteString(strings.Join([]string{
		stat("Score", m.visibleScore()),
		stat("Max", e.MaxNumber()),
		stat("Best", e.HistoryMaxNumber()),
		stat("Moves", e.ActionCount()),
	}, "   "))
	b.WriteString("\n\n")

	b.WriteString(renderBoard(m.visibleBoard(), e.Column(), m.gameOver()))
	b.WriteString("\n")

	switch {
	case e.Mode() == t2048.ModeReplay:
		b.WriteString(replayStyle.Render(fmt.Sprintf("REVIEW  move %d / %d", e.ReplayCursor(), e.ActionCount())))
		b.WriteString("\n")
	case m.gameOver():
		b.WriteString(overStyle.Render("No moves left: u to undo, v to review, n for a new game"))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	if e.Mode() == t2048.ModeReplay {
		b.WriteString(m.help.View(newReplayKeys(m.keys)))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	if m.width == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// Back reports whether the player asked to return to the menu.
func (m Model) Back() bool {
	return m.back
}

// Quitting reports whether the player asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run plays a session in its own program until the player leaves it.
// It reports whether the player asked to return to the menu.
func Run(s *Session) (back bool, err error) {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.Back(), nil
	}
	return false, nil
}
