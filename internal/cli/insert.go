package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/logger"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
	"github.com/ianfajar-codes/sensorgas/internal/ui"
)

// InsertOptions holds options for the insert command.
type InsertOptions struct {
	Value       string // Raw value argument; empty prompts when Interactive
	Interactive bool   // stdin is a terminal
}

// promptValue asks for a reading value. Tests replace it.
var promptValue = func(ctx context.Context) (string, error) {
	var raw string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Gas concentration (ppm)").
				Description(fmt.Sprintf("Readings at or above %.0f ppm are dirty", telemetry.DirtyThreshold)).
				Placeholder("42.5").
				Value(&raw).
				Validate(func(s string) error {
					_, err := ParseValue(s)
					return err
				}),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return raw, nil
}

// insertCommand appends one reading stamped with the current time.
func insertCommand(ctx context.Context, opts InsertOptions, w io.Writer) error {
	raw := opts.Value
	if raw == "" {
		if !opts.Interactive {
			return errors.New(errors.ErrConfig,
				"A value is required",
				"Pass it as an argument: sensorgas insert 42.5")
		}
		var err error
		raw, err = promptValue(ctx)
		if err != nil {
			if stderrors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(w, "Cancelled.")
				return nil
			}
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Pass the value as an argument instead")
		}
	}

	value, err := ParseValue(raw)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid reading value",
			"Use a non-negative number of ppm, e.g. 42.5")
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ilog := logger.NewEnvLogger("[insert]")
	st, err := connectStore(ctx, cfg.Store, ilog)
	if err != nil {
		return err
	}
	defer closeStore(st, ilog)

	if err := st.InsertReading(ctx, value); err != nil {
		return err
	}

	status, style := telemetry.StatusClean, ui.SuccessStyle()
	if telemetry.Classify(value) == telemetry.Dirty {
		status, style = telemetry.StatusDirty, ui.ErrorStyle()
	}
	fmt.Fprintf(w, "%s Inserted %.2f ppm into %s.%s %s\n",
		ui.SuccessStyle().Render(ui.SymbolSuccess), value,
		cfg.Store.Database, cfg.Store.Collection,
		style.Render("("+status.String()+")"))
	return nil
}
