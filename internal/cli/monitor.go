package cli

import (
	"context"
	stderrors "errors"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ianfajar-codes/sensorgas/internal/config"
	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/logger"
	"github.com/ianfajar-codes/sensorgas/internal/metrics"
	"github.com/ianfajar-codes/sensorgas/internal/monitor"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// DebugLogFile receives TUI logs when SENSORGAS_DEBUG is set and no log file
// was configured.
const DebugLogFile = "sensorgas.log"

// MonitorOptions holds options for the monitor command.
type MonitorOptions struct {
	Interval string // Overrides monitor.cadence
	LogFile  string // Overrides monitor.log_file
}

// monitorCommand connects to the store and runs the dashboard until the user
// quits or ctx is cancelled.
func monitorCommand(ctx context.Context, opts MonitorOptions) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	interval, err := ParseInterval(opts.Interval)
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.Monitor.Cadence = interval
		// The override can break frame <= cadence.
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	logPath := resolveLogPath(opts.LogFile, cfg.Monitor.LogFile, logger.DebugEnabled())

	mlog := logger.NewEnvLogger("[monitor]")

	// A failed connect is fatal and reported before the alt screen opens.
	st, err := connectStore(ctx, cfg.Store, mlog)
	if err != nil {
		return err
	}
	defer closeStore(st, mlog)

	// From here on the TUI owns the terminal.
	closeLog, err := redirectLog(logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	pollerOpts := []telemetry.PollerOption{
		telemetry.WithLogger(logger.NewEnvLogger("[poll]")),
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		rec, err := metrics.NewRecorder(reg)
		if err != nil {
			return err
		}
		srv, err := metrics.Serve(cfg.Metrics.Addr, reg, mlog)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot serve metrics on "+cfg.Metrics.Addr,
				"Pick a free metrics.addr or set metrics.enabled: false")
		}
		defer shutdownMetrics(srv, mlog)
		pollerOpts = append(pollerOpts, telemetry.WithRecorder(rec))
	}

	state := telemetry.NewState(st, cfg.Monitor.Cadence, pollerOpts...)
	model := monitor.NewModel(state,
		monitor.WithFrame(cfg.Monitor.Frame),
		monitor.WithContext(ctx),
		monitor.WithSource(cfg.Store.Database+"."+cfg.Store.Collection),
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Dashboard exited unexpectedly",
			"Check the terminal supports the alternate screen, or set SENSORGAS_DEBUG=1 and read "+DebugLogFile)
	}
	return nil
}

// resolveLogPath picks the flag, then the config, then DebugLogFile when
// debugging. Empty means discard.
func resolveLogPath(flag, configured string, debug bool) string {
	switch {
	case flag != "":
		return flag
	case configured != "":
		return configured
	case debug:
		return DebugLogFile
	}
	return ""
}

// redirectLog points the standard logger at path, or discards it when path
// is empty, so log lines never draw over the dashboard.
func redirectLog(path string) (func(), error) {
	prev, prevPrefix := log.Writer(), log.Prefix()
	restore := func() {
		log.SetOutput(prev)
		log.SetPrefix(prevPrefix)
	}

	if path == "" {
		log.SetOutput(io.Discard)
		return restore, nil
	}

	f, err := tea.LogToFile(path, "sensorgas")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file: "+path,
			"Check the directory exists and is writable, or pass a different --log-file")
	}
	return func() {
		restore()
		f.Close()
	}, nil
}

func shutdownMetrics(srv *metrics.Server, l logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Warn("stopping metrics server: %v", err)
	}
}
