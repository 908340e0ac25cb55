package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Name", Width: 20},
		{Title: "Status", Width: 10},
	}
	rows := []table.Row{
		{"item1", "ok"},
		{"item2", "error"},
	}

	view := NewTable(columns, rows).View()

	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "Status")
	assert.Contains(t, view, "item1")
	assert.Contains(t, view, "item2")
}

func TestNewTable_EmptyRows(t *testing.T) {
	view := NewTable([]TableColumn{{Title: "Name", Width: 20}}, []table.Row{}).View()

	assert.Contains(t, view, "Name")
}

func TestRenderSimpleTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Database", Width: 15},
		{Title: "Collection", Width: 15},
	}
	output := RenderSimpleTable(columns, [][]string{{"sensor_gas", "data_sensor"}})

	assert.Contains(t, output, "Database")
	assert.Contains(t, output, "sensor_gas")
	assert.Contains(t, output, "data_sensor")
}

func TestRenderSimpleTable_EmptyRows(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "Name", Width: 20}}, nil))
}

func TestRenderReadingTable(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Contains(t, RenderReadingTable(nil), "No sensor data yet.")
	})

	t.Run("all clean", func(t *testing.T) {
		out := RenderReadingTable([]ReadingTableRow{
			{Timestamp: "2024-05-01 08:00:00", Value: "12.50", Status: "clean"},
			{Timestamp: "2024-05-01 08:01:00", Value: "99.99", Status: "clean"},
		})

		assert.Contains(t, out, "TIMESTAMP")
		assert.Contains(t, out, "2024-05-01 08:00:00")
		assert.Contains(t, out, "99.99")
		assert.Contains(t, out, "all readings clean")
		assert.NotContains(t, out, SymbolDirty)
	})

	t.Run("dirty rows flagged", func(t *testing.T) {
		out := RenderReadingTable([]ReadingTableRow{
			{Timestamp: "2024-05-01 08:00:00", Value: "100.00", Status: "dirty"},
			{Timestamp: "2024-05-01 08:01:00", Value: "40.00", Status: "clean"},
			{Timestamp: "2024-05-01 08:02:00", Value: "140.00", Status: "dirty"},
		})

		assert.Contains(t, out, SymbolDirty+" dirty")
		assert.Contains(t, out, "2 readings at or above threshold")
	})
}
