package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/ianfajar-codes/sensorgas/internal/util"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a non-focused Bubbles table sized to show every row.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Nothing is selectable in printed output.
	s.Selected = s.Cell

	t.SetStyles(s)
	// Header text plus its bottom border.
	t.SetHeight(len(rows) + 2)
	return t
}

// RenderSimpleTable renders a non-interactive table string for CLI output.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	return NewTable(columns, tableRows).View()
}

// ReadingTableRow is one printed reading.
type ReadingTableRow struct {
	Timestamp string
	Value     string
	Status    string // "clean" or "dirty"
}

// readingColumns are the history table's columns.
var readingColumns = []TableColumn{
	{Title: "TIMESTAMP", Width: 21},
	{Title: "VALUE (PPM)", Width: 13},
	{Title: "STATUS", Width: 8},
}

// RenderReadingTable renders readings followed by a one-line summary.
// Dirty rows are flagged after the table body since table cells are unstyled.
func RenderReadingTable(rows []ReadingTableRow) string {
	if len(rows) == 0 {
		return MutedStyle().Render("No sensor data yet.")
	}

	cells := make([][]string, len(rows))
	dirty := 0
	for i, r := range rows {
		status := r.Status
		if status == "dirty" {
			status = SymbolDirty + " dirty"
			dirty++
		}
		cells[i] = []string{r.Timestamp, r.Value, status}
	}

	summary := SuccessStyle().Render(SymbolSuccess + " all readings clean")
	if dirty > 0 {
		summary = ErrorStyle().Render(SymbolDirty + " " + util.CountNoun(dirty, "reading", "readings") + " at or above threshold")
	}

	return RenderSimpleTable(readingColumns, cells) + "\n" + summary
}
