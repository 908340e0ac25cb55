package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Semantic colors for concentration levels
	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")

	ColorGraph = lipgloss.Color("#00FFFF")
	ColorTrend = lipgloss.Color("#BF40FF")
)

// WarningFraction of DirtyThreshold at which values start rendering amber.
const WarningFraction = 0.8

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Padding(0, 2)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorDarkBg).
			Background(ColorAccent).
			Bold(true).
			Padding(0, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	BigValueStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorBorder)

	BadgeCleanStyle = lipgloss.NewStyle().
			Foreground(ColorDarkBg).
			Background(ColorHealthy).
			Bold(true).
			Padding(0, 2)

	BadgeDirtyStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorCritical).
			Bold(true).
			Padding(0, 2)

	BadgeNoDataStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary).
				Italic(true)
)

// FetchSpinnerFrames animate the header while a fetch is in flight.
var FetchSpinnerFrames = []string{"◐", "◓", "◑", "◒"}

// ValueColor returns the color for a concentration: red at or above the
// dirty threshold, amber when approaching it, green otherwise.
func ValueColor(ppm float64) lipgloss.Color {
	switch {
	case telemetry.Classify(ppm) == telemetry.Dirty:
		return ColorCritical
	case ppm >= telemetry.DirtyThreshold*WarningFraction:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// ValueStyleFor returns a style with the foreground color for ppm.
func ValueStyleFor(ppm float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ValueColor(ppm))
}

// StatusBadge renders the realtime verdict.
func StatusBadge(s telemetry.Status) string {
	switch s {
	case telemetry.StatusDirty:
		return BadgeDirtyStyle.Render(s.String())
	case telemetry.StatusClean:
		return BadgeCleanStyle.Render(s.String())
	default:
		return BadgeNoDataStyle.Render(s.String() + ".")
	}
}

// SectionHeader renders a section header with the title on the left and value on the right.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	// Left: "╭─ " + title + " "
	leftWidth := 3 + lipgloss.Width(title) + 1
	// Right: " " + value + " ╮"
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}

	middle := strings.Repeat("─", fillWidth)

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorGraph).Bold(true)

	return borderStyle.Render("╭─ ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+middle+" ") +
		valueStyle.Render(value) +
		borderStyle.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
// Format: ╰────────────────────────────────────────────────────╯
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	middle := strings.Repeat("─", width-2)
	return lipgloss.NewStyle().Foreground(ColorBorder).Render("╰" + middle + "╯")
}

// SectionContentLine renders a content line with left and right borders, properly padded to width.
// Format: │ content                                              │
func SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	innerWidth := width - 4

	padding := innerWidth - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}
