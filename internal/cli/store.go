package cli

import (
	"context"
	"os"
	"time"

	"github.com/ianfajar-codes/sensorgas/internal/config"
	"github.com/ianfajar-codes/sensorgas/internal/logger"
	"github.com/ianfajar-codes/sensorgas/internal/store"
	"github.com/ianfajar-codes/sensorgas/internal/ui"
	"golang.org/x/term"
)

// closeTimeout bounds the disconnect on the way out.
const closeTimeout = 5 * time.Second

// openStore connects to the reading store. Tests replace it with a fake.
var openStore = func(ctx context.Context, cfg config.StoreConfig, log logger.Logger) (store.Store, error) {
	s, err := store.Connect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// connectStore opens the store, showing a spinner on interactive terminals.
func connectStore(ctx context.Context, cfg config.StoreConfig, log logger.Logger) (store.Store, error) {
	if MachineMode() || !term.IsTerminal(int(os.Stderr.Fd())) {
		return openStore(ctx, cfg, log)
	}

	spinner := ui.NewSpinner("Connecting to " + cfg.Database + "." + cfg.Collection)
	spinner.Start()
	s, err := openStore(ctx, cfg, log)
	if err != nil {
		spinner.Fail()
		return nil, err
	}
	spinner.Success()
	return s, nil
}

// closeStore disconnects with a fresh deadline so a cancelled command
// context still lets the driver shut down cleanly.
func closeStore(s store.Store, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := s.Close(ctx); err != nil {
		log.Warn("closing store: %v", err)
	}
}
