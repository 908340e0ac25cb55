package telemetry

import "fmt"

// ViewMode selects which presentation is active.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewRealtime
	ViewHistory
)

// viewModes lists the modes in navigation order.
var viewModes = []ViewMode{ViewDashboard, ViewRealtime, ViewHistory}

// ViewModes returns all modes in navigation order.
func ViewModes() []ViewMode {
	out := make([]ViewMode, len(viewModes))
	copy(out, viewModes)
	return out
}

// String returns the tab label for the mode.
func (v ViewMode) String() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewRealtime:
		return "Realtime"
	case ViewHistory:
		return "History"
	default:
		return "unknown"
	}
}

// Valid reports whether v is one of the defined modes.
func (v ViewMode) Valid() bool {
	return v >= ViewDashboard && v <= ViewHistory
}

// ViewState tracks the single active view. It starts on the dashboard and
// only changes on explicit selection.
type ViewState struct {
	active ViewMode
}

// NewViewState returns a state with the dashboard active.
func NewViewState() *ViewState {
	return &ViewState{active: ViewDashboard}
}

// Active returns the current mode.
func (s *ViewState) Active() ViewMode {
	return s.active
}

// Set switches to mode. Any mode can follow any other.
func (s *ViewState) Set(mode ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown view mode %d", int(mode))
	}
	s.active = mode
	return nil
}

// Next selects the following mode, wrapping around.
func (s *ViewState) Next() ViewMode {
	s.active = ViewMode((int(s.active) + 1) % len(viewModes))
	return s.active
}

// Prev selects the preceding mode, wrapping around.
func (s *ViewState) Prev() ViewMode {
	s.active = ViewMode((int(s.active) + len(viewModes) - 1) % len(viewModes))
	return s.active
}
