package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
)

// DefaultFrame is how often the host loop wakes to check for due work.
const DefaultFrame = 250 * time.Millisecond

// Width breakpoints for layout
const (
	BreakpointCompact = 60
	BreakpointWide    = 100
)

// HeightMinimal is the smallest height that still shows the footer.
const HeightMinimal = 16

// chromeHeight is the rows used by header, tabs, status, and footer.
const chromeHeight = 7

// Model is the Bubble Tea model for the sensor dashboard.
type Model struct {
	state   *telemetry.State
	ctx     context.Context
	frame   time.Duration
	source  string
	keys    KeyMap
	help    help.Model
	fetches *FetchHistory

	width    int
	height   int
	now      time.Time
	fetching bool
	lastErr  string
	showHelp bool
	quitting bool

	spinnerFrame int

	historyViewport viewport.Model
	viewportReady   bool
	historyShown    int // readings rendered into the viewport
}

// Option configures a Model.
type Option func(*Model)

// WithFrame sets the host-loop tick interval.
func WithFrame(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.frame = d
		}
	}
}

// WithContext sets the context handed to each fetch.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithSource labels the header with where readings come from.
func WithSource(s string) Option {
	return func(m *Model) {
		m.source = s
	}
}

// tickMsg is one frame of the host loop.
type tickMsg time.Time

// fetchResultMsg carries a completed fetch back to Update.
type fetchResultMsg struct {
	result telemetry.FetchResult
}

// NewModel creates a dashboard driving state.
func NewModel(state *telemetry.State, opts ...Option) Model {
	m := Model{
		state:   state,
		ctx:     context.Background(),
		frame:   DefaultFrame,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		fetches: NewFetchHistory(DefaultHistorySize),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init fires the first frame immediately so the first fetch starts at once.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return tickMsg(time.Now())
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		viewportHeight := m.height - chromeHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.viewportReady {
			m.historyViewport = viewport.New(m.width, viewportHeight)
			m.viewportReady = true
		} else {
			m.historyViewport.Width = m.width
			m.historyViewport.Height = viewportHeight
		}
		m.refreshHistoryContent()

	case tickMsg:
		now := time.Time(msg)
		m.now = now
		m.spinnerFrame = (m.spinnerFrame + 1) % 10000

		cmds := []tea.Cmd{m.tickCmd()}
		if m.state.Poller().TryStart(now) {
			m.fetching = true
			cmds = append(cmds, m.fetchCmd())
		}
		return m, tea.Batch(cmds...)

	case fetchResultMsg:
		m.fetching = false
		err := m.state.Poller().Apply(msg.result)
		m.fetches.Push(msg.result.Elapsed, err == nil)
		if err != nil {
			m.lastErr = errors.Short(err)
		} else {
			m.lastErr = ""
			m.refreshHistoryContent()
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// tickCmd returns a command that sends the next frame.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchCmd runs one fetch off the UI goroutine. Only the poller's Fetch runs
// here; all state changes happen in Update when the result arrives.
func (m Model) fetchCmd() tea.Cmd {
	poller := m.state.Poller()
	ctx := m.ctx
	return func() tea.Msg {
		return fetchResultMsg{result: poller.Fetch(ctx)}
	}
}

// onViewChanged syncs view-specific state after a mode switch.
func (m *Model) onViewChanged() {
	if m.state.ActiveView() == telemetry.ViewHistory {
		m.refreshHistoryContent()
	}
}

// refreshHistoryContent re-renders the history list into the viewport,
// keeping the reader pinned to the newest entry if they were already there.
func (m *Model) refreshHistoryContent() {
	if !m.viewportReady {
		return
	}
	wasAtBottom := m.historyViewport.AtBottom() || m.historyShown == 0
	content, n := m.renderHistoryLines()
	m.historyViewport.SetContent(content)
	m.historyShown = n
	if wasAtBottom {
		m.historyViewport.GotoBottom()
	}
}

// State returns the monitoring core.
func (m Model) State() *telemetry.State {
	return m.state
}

// Fetching reports whether a fetch is in flight.
func (m Model) Fetching() bool {
	return m.fetching
}

// LastError returns the last fetch failure, empty after a success.
func (m Model) LastError() string {
	return m.lastErr
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// SecondsSinceUpdate returns seconds since the last successful refresh,
// -1 if there has been none.
func (m Model) SecondsSinceUpdate() int {
	last := m.state.Poller().LastSuccess()
	if last.IsZero() {
		return -1
	}
	now := m.now
	if now.IsZero() || now.Before(last) {
		return 0
	}
	return int(now.Sub(last).Seconds())
}

// FetchSpinner returns the current spinner glyph.
func (m Model) FetchSpinner() string {
	return FetchSpinnerFrames[m.spinnerFrame%len(FetchSpinnerFrames)]
}

// ShowFooter returns true if the terminal is tall enough to show the footer.
func (m Model) ShowFooter() bool {
	return m.height == 0 || m.height >= HeightMinimal
}

// contentWidth is the usable width for sections.
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 60
	}
	if m.width > BreakpointWide {
		return BreakpointWide
	}
	return m.width
}
