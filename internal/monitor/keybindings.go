package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
)

// KeyMap defines the dashboard's key bindings. It satisfies help.KeyMap.
type KeyMap struct {
	Quit       key.Binding
	Refresh    key.Binding
	Dashboard  key.Binding
	Realtime   key.Binding
	History    key.Binding
	NextView   key.Binding
	PrevView   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Help       key.Binding
	Close      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Dashboard:  key.NewBinding(key.WithKeys("1", "d"), key.WithHelp("1/d", "dashboard")),
		Realtime:   key.NewBinding(key.WithKeys("2", "t"), key.WithHelp("2/t", "realtime")),
		History:    key.NewBinding(key.WithKeys("3", "h"), key.WithHelp("3/h", "history")),
		NextView:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevView:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous view")),
		ScrollUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "oldest")),
		Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "newest")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp is shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dashboard, k.Realtime, k.History, k.Refresh, k.Help, k.Quit}
}

// FullHelp is shown in the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.Realtime, k.History, k.NextView, k.PrevView},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Refresh, k.Help, k.Close, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return true, nil
	}

	if m.showHelp && key.Matches(msg, m.keys.Close) {
		m.showHelp = false
		m.help.ShowAll = false
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		// Next frame tick starts the fetch unless one is already in flight.
		m.state.Poller().Scheduler().Expire()
		return true, nil

	case key.Matches(msg, m.keys.Dashboard):
		m.selectView(telemetry.ViewDashboard)
		return true, nil

	case key.Matches(msg, m.keys.Realtime):
		m.selectView(telemetry.ViewRealtime)
		return true, nil

	case key.Matches(msg, m.keys.History):
		m.selectView(telemetry.ViewHistory)
		return true, nil

	case key.Matches(msg, m.keys.NextView):
		m.state.View().Next()
		m.onViewChanged()
		return true, nil

	case key.Matches(msg, m.keys.PrevView):
		m.state.View().Prev()
		m.onViewChanged()
		return true, nil
	}

	if m.state.ActiveView() == telemetry.ViewHistory && m.viewportReady {
		switch {
		case key.Matches(msg, m.keys.ScrollUp):
			m.historyViewport.ScrollUp(1)
			return true, nil
		case key.Matches(msg, m.keys.ScrollDown):
			m.historyViewport.ScrollDown(1)
			return true, nil
		case key.Matches(msg, m.keys.PageUp):
			m.historyViewport.PageUp()
			return true, nil
		case key.Matches(msg, m.keys.PageDown):
			m.historyViewport.PageDown()
			return true, nil
		case key.Matches(msg, m.keys.Top):
			m.historyViewport.GotoTop()
			return true, nil
		case key.Matches(msg, m.keys.Bottom):
			m.historyViewport.GotoBottom()
			return true, nil
		}
	}

	return false, nil
}

func (m *Model) selectView(mode telemetry.ViewMode) {
	// Modes come from the key map, so Set cannot fail here.
	_ = m.state.SetView(mode)
	m.onViewChanged()
}
