package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
	"github.com/ianfajar-codes/sensorgas/internal/util"
)

// TimestampLayout is how reading times are shown.
const TimestampLayout = "2006-01-02 15:04:05"

// Chart dimensions for the dashboard view.
const (
	chartHeight   = 6
	chartMaxWidth = 60
)

// renderDashboard renders the complete screen for the active view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.state.ActiveView() {
	case telemetry.ViewRealtime:
		b.WriteString(m.renderRealtime())
	case telemetry.ViewHistory:
		b.WriteString(m.renderHistory())
	default:
		b.WriteString(m.renderChart())
	}

	b.WriteString("\n")
	if status := m.renderStatusLine(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}

	if m.ShowFooter() {
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

// renderHeader renders the title bar with summary stats.
func (m Model) renderHeader() string {
	buf := m.state.Buffer()
	count := buf.Len()

	var updateText string
	switch secs := m.SecondsSinceUpdate(); {
	case !buf.Populated() || secs < 0:
		updateText = "waiting for data"
	case count == 0:
		// A successful fetch of an empty collection is data, just none yet.
		updateText = "collection empty"
	case secs == 0:
		updateText = "updated just now"
	default:
		updateText = fmt.Sprintf("updated %ds ago", secs)
	}

	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("sensorgas")

	parts := []string{util.CountNoun(count, "reading", "readings"), updateText}
	if m.source != "" {
		parts = append([]string{m.source}, parts...)
	}
	if last, ok := m.fetches.LastLatency(); ok {
		parts = append(parts, fmt.Sprintf("fetch %s %s",
			RenderMiniSparkline(m.fetches.Latencies(8), 8),
			last.Round(time.Millisecond)))
	}
	if m.fetching {
		parts = append(parts, m.FetchSpinner()+" fetching")
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | " + strings.Join(parts, " | "))

	return HeaderStyle.Render(title + stats)
}

// renderTabs renders the mode selector with the active mode highlighted.
func (m Model) renderTabs() string {
	active := m.state.ActiveView()
	tabs := make([]string, 0, len(telemetry.ViewModes()))
	for i, mode := range telemetry.ViewModes() {
		label := fmt.Sprintf("%d %s", i+1, mode)
		if mode == active {
			tabs = append(tabs, TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderChart renders the recent-readings chart with its smoothed trend.
func (m Model) renderChart() string {
	width := m.contentWidth()
	inner := width - 4
	graphWidth := inner
	if graphWidth > chartMaxWidth {
		graphWidth = chartMaxWidth
	}

	recent, trend := m.state.RecentTrend()
	title := fmt.Sprintf("Sensor Chart (%d latest)", telemetry.RecentWindow)

	if len(recent) == 0 {
		lines := []string{
			SectionHeader(title, "-", width),
			SectionContentLine(BadgeNoDataStyle.Render(telemetry.StatusNoData.String()+"."), width),
			SectionFooter(width),
		}
		return strings.Join(lines, "\n")
	}

	values := telemetry.Values(recent)
	last := values[len(values)-1]
	minVal, maxVal := findMinMax(values)

	var lines []string
	lines = append(lines, SectionHeader(title, fmt.Sprintf("%.2f ppm", last), width))
	for _, row := range strings.Split(RenderTimeSeriesGraph(values, graphWidth, chartHeight), "\n") {
		lines = append(lines, SectionContentLine(row, width))
	}

	rangeLine := LabelStyle.Render("min ") + ValueStyleFor(minVal).Render(fmt.Sprintf("%.2f", minVal)) +
		LabelStyle.Render("  max ") + ValueStyleFor(maxVal).Render(fmt.Sprintf("%.2f", maxVal)) +
		LabelStyle.Render(fmt.Sprintf("  threshold %.0f ppm", telemetry.DirtyThreshold))
	lines = append(lines, SectionContentLine(rangeLine, width))

	trendLine := LabelStyle.Render("trend ")
	if len(trend) == 0 {
		trendLine += MutedStyle.Render("needs at least 3 readings")
	} else {
		ys := telemetry.TrendValues(trend)
		trendLine += RenderTrendSparkline(ys, graphWidth-16) +
			" " + ValueStyleFor(ys[len(ys)-1]).Render(fmt.Sprintf("%.2f", ys[len(ys)-1]))
	}
	lines = append(lines, SectionContentLine(trendLine, width))
	lines = append(lines, SectionFooter(width))

	return strings.Join(lines, "\n")
}

// renderRealtime renders the newest reading and its verdict.
func (m Model) renderRealtime() string {
	width := m.contentWidth()
	last, ok := m.state.LastReading()
	status := telemetry.StatusOf(last, ok)

	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left,
			SectionHeader("Realtime", "-", width),
			SectionContentLine(StatusBadge(status), width),
			SectionFooter(width),
		)
	}

	value := BigValueStyle.
		Foreground(ValueColor(last.Value())).
		Render(fmt.Sprintf("%.2f ppm", last.Value()))

	body := lipgloss.JoinVertical(lipgloss.Left,
		LabelStyle.Render("Latest reading at ")+ValueStyle.Render(last.Timestamp().Format(TimestampLayout)),
		value,
		StatusBadge(status),
	)

	var lines []string
	lines = append(lines, SectionHeader("Realtime", last.Timestamp().Format("15:04:05"), width))
	for _, row := range strings.Split(body, "\n") {
		lines = append(lines, SectionContentLine(row, width))
	}
	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderHistory renders the scrollable list of every reading.
func (m Model) renderHistory() string {
	n := m.state.Buffer().Len()
	title := LabelStyle.Render("History (" + util.CountNoun(n, "reading", "readings") + ")")
	if !m.viewportReady {
		content, _ := m.renderHistoryLines()
		return title + "\n" + content
	}
	pos := MutedStyle.Render(fmt.Sprintf(" %3.0f%%", m.historyViewport.ScrollPercent()*100))
	return title + pos + "\n" + m.historyViewport.View()
}

// renderHistoryLines formats every reading in store order.
func (m Model) renderHistoryLines() (string, int) {
	var b strings.Builder
	n := 0
	for r := range m.state.Buffer().All() {
		if n > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatHistoryLine(r))
		n++
	}
	if n == 0 {
		return BadgeNoDataStyle.Render(telemetry.StatusNoData.String() + "."), 0
	}
	return b.String(), n
}

// FormatHistoryLine renders one reading as "timestamp  value ppm  marker".
func FormatHistoryLine(r telemetry.Reading) string {
	marker := "  "
	if telemetry.Classify(r.Value()) == telemetry.Dirty {
		marker = ErrorStyle.Render(" ▲")
	}
	return MutedStyle.Render(r.Timestamp().Format(TimestampLayout)) + "  " +
		ValueStyleFor(r.Value()).Render(fmt.Sprintf("%10.2f ppm", r.Value())) + marker
}

// renderStatusLine shows the last fetch failure, if any.
func (m Model) renderStatusLine() string {
	if m.lastErr == "" {
		return ""
	}
	return ErrorStyle.Render("✗ " + m.lastErr + " (showing previous data)")
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.View(m.keys))
}
