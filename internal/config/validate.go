package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
)

// ValidColorModes lists the accepted output.color values.
var ValidColorModes = []string{"auto", "always", "never"}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sensorgas only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade sensorgas, or lower the version field.")
	}

	if err := validateStore(cfg.Store); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'store' section in your .sensorgas.yaml.")
	}

	if err := validateMonitor(cfg.Monitor); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'monitor' section in your .sensorgas.yaml.")
	}

	if err := validateMetrics(cfg.Metrics); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'metrics' section in your .sensorgas.yaml.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .sensorgas.yaml.")
	}

	return nil
}

// validateStore leaves an empty URI to the store, which explains it better.
func validateStore(store StoreConfig) error {
	if strings.Contains(store.URI, "${") {
		return fmt.Errorf("store.uri has an unexpanded variable: %s", RedactURI(store.URI))
	}
	if strings.TrimSpace(store.Database) == "" {
		return fmt.Errorf("store.database is empty - the sensor pipeline writes to '%s'", DefaultDatabase)
	}
	if strings.TrimSpace(store.Collection) == "" {
		return fmt.Errorf("store.collection is empty - the sensor pipeline writes to '%s'", DefaultCollection)
	}
	if store.ConnectTimeout <= 0 {
		return fmt.Errorf("store.connect_timeout needs to be positive (got %v)", store.ConnectTimeout)
	}
	if store.FetchTimeout <= 0 {
		return fmt.Errorf("store.fetch_timeout needs to be positive (got %v)", store.FetchTimeout)
	}
	return nil
}

func validateMonitor(monitor MonitorConfig) error {
	if monitor.Cadence < telemetry.MinCadence {
		return fmt.Errorf("monitor.cadence %v is too short - use at least %v", monitor.Cadence, telemetry.MinCadence)
	}
	if monitor.Frame <= 0 {
		return fmt.Errorf("monitor.frame needs to be positive (got %v)", monitor.Frame)
	}
	if monitor.Frame > monitor.Cadence {
		return fmt.Errorf("monitor.frame (%v) is longer than monitor.cadence (%v) - refreshes would be late", monitor.Frame, monitor.Cadence)
	}
	if monitor.Frame < 10*time.Millisecond {
		return fmt.Errorf("monitor.frame %v would spin the CPU - use at least 10ms", monitor.Frame)
	}
	return nil
}

func validateMetrics(m MetricsConfig) error {
	if !m.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(m.Addr); err != nil {
		return fmt.Errorf("metrics.addr '%s' isn't a host:port address", m.Addr)
	}
	return nil
}

func validateOutput(out OutputConfig) error {
	for _, mode := range ValidColorModes {
		if out.Color == mode {
			return nil
		}
	}
	return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
}
