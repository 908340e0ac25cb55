package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ianfajar-codes/sensorgas/internal/logger"
	"github.com/ianfajar-codes/sensorgas/internal/monitor"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
	"github.com/ianfajar-codes/sensorgas/internal/ui"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	JSON  bool
	Limit int // newest N readings; 0 prints all
}

// HistoryOutput is the --json payload.
type HistoryOutput struct {
	Database   string           `json:"database"`
	Collection string           `json:"collection"`
	Total      int              `json:"total"`
	Status     string           `json:"status"`
	Readings   []ReadingJSON    `json:"readings"`
	Trend      []TrendPointJSON `json:"trend,omitempty"`
}

// ReadingJSON is one reading in machine output.
type ReadingJSON struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Quality   string    `json:"quality"`
}

// TrendPointJSON is one smoothed point over the recent window.
type TrendPointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// historyCommand fetches the collection once and prints it.
func historyCommand(ctx context.Context, opts HistoryOptions, w io.Writer) error {
	if opts.JSON {
		machineMode = true
	}
	if err := ParseLimit(opts.Limit); err != nil {
		return err
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	hlog := logger.NewEnvLogger("[history]")
	st, err := connectStore(ctx, cfg.Store, hlog)
	if err != nil {
		return err
	}
	defer closeStore(st, hlog)

	// One cycle through the same poller the dashboard uses.
	state := telemetry.NewState(st, cfg.Monitor.Cadence, telemetry.WithLogger(hlog))
	if _, err := state.Poller().Tick(ctx, time.Now()); err != nil {
		return err
	}

	out := buildHistoryOutput(state, opts.Limit)
	out.Database = cfg.Store.Database
	out.Collection = cfg.Store.Collection

	if opts.JSON {
		return WriteJSONSuccess(w, out)
	}
	return writeHistoryTable(w, state, out)
}

// buildHistoryOutput shapes the snapshot held by state. limit > 0 keeps only
// the newest readings.
func buildHistoryOutput(state *telemetry.State, limit int) HistoryOutput {
	readings := state.CurrentSnapshot()
	total := len(readings)
	if limit > 0 && limit < total {
		readings = state.Buffer().Recent(limit)
	}

	out := HistoryOutput{
		Total:    total,
		Status:   state.Status().String(),
		Readings: make([]ReadingJSON, len(readings)),
	}
	for i, r := range readings {
		out.Readings[i] = ReadingJSON{
			Timestamp: r.Timestamp(),
			Value:     r.Value(),
			Quality:   telemetry.Classify(r.Value()).String(),
		}
	}

	_, trend := state.RecentTrend()
	for _, p := range trend {
		out.Trend = append(out.Trend, TrendPointJSON{X: p.X, Y: p.Y})
	}
	return out
}

func writeHistoryTable(w io.Writer, state *telemetry.State, out HistoryOutput) error {
	rows := make([]ui.ReadingTableRow, len(out.Readings))
	for i, r := range out.Readings {
		rows[i] = ui.ReadingTableRow{
			Timestamp: r.Timestamp.Format(monitor.TimestampLayout),
			Value:     fmt.Sprintf("%.2f", r.Value),
			Status:    r.Quality,
		}
	}

	if _, err := fmt.Fprintln(w, ui.RenderReadingTable(rows)); err != nil {
		return err
	}

	if len(out.Readings) < out.Total {
		fmt.Fprintln(w, ui.MutedStyle().Render(fmt.Sprintf("showing newest %d of %d readings", len(out.Readings), out.Total)))
	}

	if last, ok := state.LastReading(); ok {
		fmt.Fprintf(w, "Latest: %.2f ppm (%s)\n", last.Value(), state.Status())
	}
	return nil
}
