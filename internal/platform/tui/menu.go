package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile2048/internal/core"
	"github.com/vovakirdan/tile2048/internal/registry"
	"github.com/vovakirdan/tile2048/internal/storage"
)

// MenuItem is a selectable board variant.
type MenuItem struct {
	Variant   registry.Variant
	HighScore int
	Resumable bool // The owner has an unfinished game on this board
}

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	keys           menuKeys
	help           help.Model
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a variant picker for owner.
// The cursor starts on the owner's unfinished game, if any.
func NewMenuModel(store *storage.Store, owner string, width, height int) MenuModel {
	active := ""
	if store != nil {
		if meta, _, err := store.ActiveSession(owner); err == nil {
			active = meta.Variant
		}
	}

	variants := registry.List()
	m := MenuModel{
		items:  make([]MenuItem, 0, len(variants)),
		width:  width,
		height: height,
		keys:   defaultMenuKeys(),
		help:   help.New(),
	}
	for i, v := range variants {
		item := MenuItem{Variant: v, Resumable: v.ID == active}
		if store != nil {
			if hs, err := store.HighScore(v.ID); err == nil {
				item.HighScore = hs
			}
		}
		if item.Resumable {
			m.cursor = i
		}
		m.items = append(m.items, item)
	}
	return m
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor = core.Clamp(m.cursor-1, 0, len(m.items)-1)

	case key.Matches(msg, m.keys.Down):
		m.cursor = core.Clamp(m.cursor+1, 0, len(m.items)-1)

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	resumeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("2 0 4 8", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a board", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-14s best %6d", item.Variant.Title, item.HighScore)
		if item.Resumable {
			line += "  (resume)"
		} else {
			line += "          "
		}
		if i == m.cursor {
			line = ">" + line[1:]
			b.WriteString(centerText(cursorStyle.Render(line), m.width))
		} else if item.Resumable {
			b.WriteString(centerText(resumeStyle.Render(line), m.width))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if the user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
