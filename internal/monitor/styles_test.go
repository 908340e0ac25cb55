package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
	"github.com/stretchr/testify/assert"
)

func TestValueColor(t *testing.T) {
	tests := []struct {
		name   string
		ppm    float64
		expect lipgloss.Color
	}{
		{"zero", 0, ColorHealthy},
		{"low", 35.5, ColorHealthy},
		{"just below warning", 79.99, ColorHealthy},
		{"warning at fraction", 80, ColorWarning},
		{"warning just below threshold", 99.99, ColorWarning},
		{"critical at threshold", 100, ColorCritical},
		{"critical high", 480, ColorCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ValueColor(tt.ppm))
		})
	}
}

func TestValueStyleFor(t *testing.T) {
	style := ValueStyleFor(150)
	assert.Equal(t, lipgloss.TerminalColor(ColorCritical), style.GetForeground())
}

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		status telemetry.Status
		want   string
	}{
		{telemetry.StatusClean, "Air Clean"},
		{telemetry.StatusDirty, "Air Dirty"},
		{telemetry.StatusNoData, "No sensor data yet."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Contains(t, StatusBadge(tt.status), tt.want)
		})
	}
}

func TestSectionHeader(t *testing.T) {
	header := SectionHeader("Sensor Chart", "42.00 ppm", 50)

	assert.Equal(t, 50, lipgloss.Width(header))
	assert.Contains(t, header, "Sensor Chart")
	assert.Contains(t, header, "42.00 ppm")
	assert.Contains(t, header, "╭─")
	assert.Contains(t, header, "╮")
}

func TestSectionFooter(t *testing.T) {
	footer := SectionFooter(20)

	assert.Equal(t, 20, lipgloss.Width(footer))
	assert.Contains(t, footer, "╰")
	assert.Contains(t, footer, "╯")
}

func TestSectionContentLine(t *testing.T) {
	t.Run("pads to width", func(t *testing.T) {
		line := SectionContentLine("hello", 30)
		assert.Equal(t, 30, lipgloss.Width(line))
		assert.True(t, strings.Contains(line, "hello"))
	})

	t.Run("overlong content is not truncated", func(t *testing.T) {
		content := strings.Repeat("x", 40)
		line := SectionContentLine(content, 20)
		assert.Contains(t, line, content)
	})
}

func TestFetchSpinnerFrames(t *testing.T) {
	assert.NotEmpty(t, FetchSpinnerFrames)
	for _, f := range FetchSpinnerFrames {
		assert.Equal(t, 1, lipgloss.Width(f))
	}
}
