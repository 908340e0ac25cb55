package monitor

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ianfajar-codes/sensorgas/internal/logger"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func makeReadings(values ...float64) []telemetry.Reading {
	out := make([]telemetry.Reading, len(values))
	for i, v := range values {
		out[i] = telemetry.NewReading(baseTime.Add(time.Duration(i)*time.Minute), v)
	}
	return out
}

// switchFetcher returns readings or err, whichever is currently set.
type switchFetcher struct {
	mu       sync.Mutex
	readings []telemetry.Reading
	err      error
	calls    int
}

func (f *switchFetcher) FetchAll(context.Context) ([]telemetry.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.readings, nil
}

func (f *switchFetcher) set(readings []telemetry.Reading, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readings = readings
	f.err = err
}

type skipCounter struct {
	mu      sync.Mutex
	skipped int
}

func (r *skipCounter) PollSucceeded([]telemetry.Reading, time.Duration) {}
func (r *skipCounter) PollFailed(error, time.Duration)                  {}
func (r *skipCounter) PollSkipped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped++
}

func newTestModel(t *testing.T, f telemetry.Fetcher, opts ...telemetry.PollerOption) Model {
	t.Helper()
	opts = append([]telemetry.PollerOption{telemetry.WithLogger(logger.Noop())}, opts...)
	state := telemetry.NewState(f, 2*time.Second, opts...)
	return NewModel(state, WithFrame(10*time.Millisecond))
}

// step feeds msg to the model and returns the concrete Model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// tickAndFetch runs one frame at now and, if it started a fetch, completes it.
func tickAndFetch(t *testing.T, m Model, now time.Time) Model {
	t.Helper()
	m, _ = step(t, m, tickMsg(now))
	if m.Fetching() {
		m, _ = step(t, m, m.fetchCmd()())
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, &switchFetcher{})

	assert.Equal(t, 10*time.Millisecond, m.frame)
	assert.False(t, m.Fetching())
	assert.False(t, m.Quitting())
	assert.Empty(t, m.LastError())
	assert.Equal(t, -1, m.SecondsSinceUpdate())
	assert.Equal(t, telemetry.ViewDashboard, m.State().ActiveView())
}

func TestNewModel_Options(t *testing.T) {
	state := telemetry.NewState(&switchFetcher{}, 0, telemetry.WithLogger(logger.Noop()))

	m := NewModel(state, WithFrame(0), WithSource("sensor_gas.data_sensor"))
	assert.Equal(t, DefaultFrame, m.frame, "non-positive frame keeps the default")
	assert.Equal(t, "sensor_gas.data_sensor", m.source)
}

func TestModel_InitTicksImmediately(t *testing.T) {
	m := newTestModel(t, &switchFetcher{})

	cmd := m.Init()
	require.NotNil(t, cmd)
	_, ok := cmd().(tickMsg)
	assert.True(t, ok)
}

func TestModel_FirstTickFetches(t *testing.T) {
	f := &switchFetcher{readings: makeReadings(10, 20, 30)}
	m := newTestModel(t, f)

	m, cmd := step(t, m, tickMsg(baseTime))
	assert.NotNil(t, cmd)
	require.True(t, m.Fetching())

	m, cmd = step(t, m, m.fetchCmd()())
	assert.Nil(t, cmd)
	assert.False(t, m.Fetching())
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, 3, m.State().Buffer().Len())
	assert.Empty(t, m.LastError())
	assert.Equal(t, 1, m.fetches.Count())
}

func TestModel_FetchFollowsCadence(t *testing.T) {
	f := &switchFetcher{readings: makeReadings(1)}
	m := newTestModel(t, f)

	for _, offset := range []time.Duration{0, 500 * time.Millisecond, 1500 * time.Millisecond, 2 * time.Second} {
		m = tickAndFetch(t, m, baseTime.Add(offset))
	}
	assert.Equal(t, 1, f.calls, "no fetch until strictly more than the cadence has elapsed")

	m = tickAndFetch(t, m, baseTime.Add(2100*time.Millisecond))
	assert.Equal(t, 2, f.calls)
}

func TestModel_SlowFetchNeverOverlaps(t *testing.T) {
	rec := &skipCounter{}
	f := &switchFetcher{readings: makeReadings(1, 2)}
	m := newTestModel(t, f, telemetry.WithRecorder(rec))

	m, _ = step(t, m, tickMsg(baseTime))
	require.True(t, m.Fetching())
	pending := m.fetchCmd()

	// Frames keep arriving while the fetch is outstanding.
	for i := 1; i <= 20; i++ {
		m, _ = step(t, m, tickMsg(baseTime.Add(time.Duration(i)*250*time.Millisecond)))
		assert.True(t, m.Fetching())
	}
	assert.True(t, m.State().Poller().Scheduler().Pending())
	assert.Equal(t, 1, rec.skipped, "one overrunning fetch is one skipped refresh")

	m, _ = step(t, m, pending())
	assert.False(t, m.Fetching())
	assert.Equal(t, 1, f.calls)
	assert.False(t, m.State().Poller().Scheduler().Pending())
}

func TestModel_FailedFetchKeepsSnapshot(t *testing.T) {
	f := &switchFetcher{readings: makeReadings(10, 20, 30)}
	m := newTestModel(t, f)

	m = tickAndFetch(t, m, baseTime)
	require.Equal(t, 3, m.State().Buffer().Len())

	f.set(nil, stderrors.New("server selection timeout"))
	m = tickAndFetch(t, m, baseTime.Add(3*time.Second))

	assert.Contains(t, m.LastError(), "server selection timeout")
	assert.Equal(t, 3, m.State().Buffer().Len(), "previous snapshot stays visible")
	assert.Equal(t, 0.5, m.fetches.SuccessRatio())

	f.set(makeReadings(5), nil)
	m = tickAndFetch(t, m, baseTime.Add(6*time.Second))
	assert.Empty(t, m.LastError())
	assert.Equal(t, 1, m.State().Buffer().Len())
}

func TestModel_RefreshKeyForcesFetch(t *testing.T) {
	f := &switchFetcher{readings: makeReadings(1)}
	m := newTestModel(t, f)

	m = tickAndFetch(t, m, baseTime)
	m = tickAndFetch(t, m, baseTime.Add(time.Second))
	require.Equal(t, 1, f.calls)

	m, _ = step(t, m, keyMsg("r"))
	m = tickAndFetch(t, m, baseTime.Add(1250*time.Millisecond))
	assert.Equal(t, 2, f.calls)
}

func TestModel_SecondsSinceUpdate(t *testing.T) {
	m := newTestModel(t, &switchFetcher{readings: makeReadings(1)})
	m = tickAndFetch(t, m, time.Now())

	assert.Equal(t, 0, m.SecondsSinceUpdate())

	m, _ = step(t, m, tickMsg(m.State().Poller().LastSuccess().Add(5*time.Second+100*time.Millisecond)))
	assert.Equal(t, 5, m.SecondsSinceUpdate())
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t, &switchFetcher{readings: makeReadings(1, 2, 3)})
	assert.False(t, m.viewportReady)

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.True(t, m.viewportReady)
	assert.Equal(t, 80, m.historyViewport.Width)
	assert.Equal(t, 30-chromeHeight, m.historyViewport.Height)

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 4})
	assert.Equal(t, 120, m.historyViewport.Width)
	assert.Equal(t, 1, m.historyViewport.Height, "viewport keeps at least one row")
}

func TestModel_HistoryTracksNewReadings(t *testing.T) {
	f := &switchFetcher{readings: makeReadings(1, 2, 3)}
	m := newTestModel(t, f)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m = tickAndFetch(t, m, baseTime)
	assert.Equal(t, 3, m.historyShown)

	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	f.set(makeReadings(values...), nil)
	m = tickAndFetch(t, m, baseTime.Add(3*time.Second))

	assert.Equal(t, 100, m.historyShown)
	assert.True(t, m.historyViewport.AtBottom(), "history stays pinned to the newest reading")
}

func TestModel_ShowFooter(t *testing.T) {
	tests := []struct {
		height int
		want   bool
	}{
		{0, true},
		{HeightMinimal - 1, false},
		{HeightMinimal, true},
		{40, true},
	}

	for _, tt := range tests {
		m := Model{height: tt.height}
		assert.Equal(t, tt.want, m.ShowFooter(), "height %d", tt.height)
	}
}

func TestModel_ContentWidth(t *testing.T) {
	assert.Equal(t, 60, Model{}.contentWidth())
	assert.Equal(t, 80, Model{width: 80}.contentWidth())
	assert.Equal(t, BreakpointWide, Model{width: 200}.contentWidth())
}

func TestModel_FetchSpinner(t *testing.T) {
	m := Model{}
	seen := make(map[string]bool)
	for i := range FetchSpinnerFrames {
		m.spinnerFrame = i
		seen[m.FetchSpinner()] = true
	}
	assert.Len(t, seen, len(FetchSpinnerFrames))
}

func TestModel_QuitRendersNothing(t *testing.T) {
	m := newTestModel(t, &switchFetcher{})

	m, cmd := step(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestModel_ViewNotEmpty(t *testing.T) {
	m := newTestModel(t, &switchFetcher{readings: makeReadings(42)})
	m = tickAndFetch(t, m, baseTime)

	assert.True(t, strings.Contains(m.View(), "sensorgas"))
}
