package telemetry

import "time"

// State is the monitoring core owned by one host loop: the snapshot buffer,
// the poller that refreshes it, and the active view. It is the complete
// read/command surface for a rendering layer.
type State struct {
	buf    *Buffer
	poller *Poller
	view   *ViewState
}

// NewState wires a fresh buffer, scheduler, and view around fetcher.
func NewState(fetcher Fetcher, cadence time.Duration, opts ...PollerOption) *State {
	buf := NewBuffer()
	return &State{
		buf:    buf,
		poller: NewPoller(fetcher, buf, NewScheduler(cadence), opts...),
		view:   NewViewState(),
	}
}

// Buffer returns the snapshot buffer.
func (s *State) Buffer() *Buffer { return s.buf }

// Poller returns the refresh driver.
func (s *State) Poller() *Poller { return s.poller }

// CurrentSnapshot returns a copy of the latest complete snapshot.
func (s *State) CurrentSnapshot() []Reading {
	return s.buf.Snapshot()
}

// LastReading returns the newest reading, ok=false when there is none.
func (s *State) LastReading() (Reading, bool) {
	return s.buf.Last()
}

// Status returns the realtime verdict for the newest reading.
func (s *State) Status() Status {
	return StatusOf(s.buf.Last())
}

// Classify classifies a single value against DirtyThreshold.
func (s *State) Classify(ppm float64) Quality {
	return Classify(ppm)
}

// Approximate smooths values; see the package-level Approximate.
func (s *State) Approximate(values []float64) []TrendPoint {
	return Approximate(values)
}

// RecentTrend returns the last RecentWindow readings and their smoothed trend.
func (s *State) RecentTrend() ([]Reading, []TrendPoint) {
	recent := s.buf.Recent(RecentWindow)
	return recent, Approximate(Values(recent))
}

// ActiveView returns the selected view mode.
func (s *State) ActiveView() ViewMode {
	return s.view.Active()
}

// SetView selects a view mode.
func (s *State) SetView(mode ViewMode) error {
	return s.view.Set(mode)
}

// View returns the view state for cycling.
func (s *State) View() *ViewState {
	return s.view
}
