package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ianfajar-codes/sensorgas/internal/config"
	"github.com/ianfajar-codes/sensorgas/internal/logger"
	"github.com/ianfajar-codes/sensorgas/internal/store"
	storetesting "github.com/ianfajar-codes/sensorgas/internal/store/testing"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// makeReadings builds readings one second apart starting at baseTime.
func makeReadings(values ...float64) []telemetry.Reading {
	out := make([]telemetry.Reading, len(values))
	for i, v := range values {
		out[i] = telemetry.NewReading(baseTime.Add(time.Duration(i)*time.Second), v)
	}
	return out
}

// setupWorkspace moves the test into an empty directory with a usable
// connection string and no global config or stray flags.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv(config.URIEnv, "mongodb://localhost:27017")
	t.Setenv("NO_COLOR", "1")

	oldCfg, oldMachine := cfgFile, machineMode
	cfgFile, machineMode = "", false
	t.Cleanup(func() {
		cfgFile, machineMode = oldCfg, oldMachine
	})
	return dir
}

// writeConfig writes a .sensorgas.yaml into dir.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// useFakeStore routes openStore to fs and records the config it was given.
func useFakeStore(t *testing.T, fs *storetesting.FakeStore) *config.StoreConfig {
	t.Helper()
	var got config.StoreConfig
	old := openStore
	openStore = func(_ context.Context, cfg config.StoreConfig, _ logger.Logger) (store.Store, error) {
		got = cfg
		return fs, nil
	}
	t.Cleanup(func() { openStore = old })
	return &got
}
