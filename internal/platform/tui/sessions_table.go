package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile2048/internal/storage"
)

// SessionTable renders stored sessions as a static table, newest first.
func SessionTable(list []storage.SessionSummary, showOwner bool) string {
	columns := []table.Column{
		{Title: "ID", Width: 36},
		{Title: "Board", Width: 10},
		{Title: "Score", Width: 8},
		{Title: "Max", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Started", Width: 16},
		{Title: "State", Width: 8},
	}
	if showOwner {
		columns = append(columns, table.Column{Title: "Owner", Width: 12})
	}

	rows := make([]table.Row, len(list))
	for i, s := range list {
		state := "active"
		if s.Archived {
			state = "finished"
		}
		row := table.Row{
			s.ID,
			s.Variant,
			strconv.Itoa(s.Score),
			strconv.Itoa(s.MaxNumber),
			strconv.Itoa(s.ActionCount),
			s.StartTime.Format("2006-01-02 15:04"),
			state,
		}
		if showOwner {
			row = append(row, s.Owner)
		}
		rows[i] = row
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+3), // Header and its border
	)

	// No cursor highlight in a printed table.
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}
