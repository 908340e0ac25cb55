package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ianfajar-codes/sensorgas/internal/config"
	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write into; defaults to "."
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// initAnswers are the values collected by the init form.
type initAnswers struct {
	URI        string
	Database   string
	Collection string
	Cadence    string
}

// confirmOverwrite and promptInit drive the interactive parts of init. Tests
// replace them.
var (
	confirmOverwrite = func(ctx context.Context, path string) (bool, error) {
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.RunWithContext(ctx); err != nil {
			return false, err
		}
		return overwrite, nil
	}

	promptInit = func(ctx context.Context, a *initAnswers) error {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("MongoDB connection string").
					Description("Leave as ${MONGODB_URI} to read it from the environment or .env").
					Value(&a.URI),
				huh.NewInput().
					Title("Database").
					Value(&a.Database).
					Validate(requiredField("database")),
				huh.NewInput().
					Title("Collection").
					Value(&a.Collection).
					Validate(requiredField("collection")),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Refresh cadence").
					Description("How often to re-read the collection (minimum 500ms)").
					Value(&a.Cadence).
					Validate(func(s string) error {
						_, err := ParseInterval(s)
						return err
					}),
			),
		)
		return form.RunWithContext(ctx)
	}
)

func requiredField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// Init creates a new .sensorgas.yaml configuration file.
func Init(ctx context.Context, opts InitOptions, w io.Writer) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		overwrite, err := confirmOverwrite(ctx, config.ConfigFileName)
		if err != nil {
			return promptError(err, w)
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if !opts.NonInteractive {
		answers := initAnswers{
			URI:        cfg.Store.URI,
			Database:   cfg.Store.Database,
			Collection: cfg.Store.Collection,
			Cadence:    cfg.Monitor.Cadence.String(),
		}
		if err := promptInit(ctx, &answers); err != nil {
			return promptError(err, w)
		}
		if err := applyInitAnswers(cfg, answers); err != nil {
			return err
		}
	}

	// The URI stays unexpanded in the file; validate what it resolves to.
	resolved := *cfg
	resolved.Store.URI = config.Expand(resolved.Store.URI)
	if err := config.Validate(&resolved); err != nil {
		return err
	}

	if err := config.Write(configPath, cfg); err != nil {
		return err
	}

	if cfg.Store.URI != "" && !strings.Contains(cfg.Store.URI, "${") {
		ui.PrintWarning(fmt.Sprintf("%s contains a literal connection string; consider %s in .env instead", configPath, config.URIEnv))
	}

	fmt.Fprintf(w, "%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), configPath)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintf(w, "  export %s=mongodb://...   - Point at your sensor database\n", config.URIEnv)
	fmt.Fprintln(w, "  sensorgas history          - Check readings are visible")
	fmt.Fprintln(w, "  sensorgas monitor          - Open the live dashboard")
	return nil
}

// applyInitAnswers copies prompt answers into cfg.
func applyInitAnswers(cfg *config.Config, a initAnswers) error {
	cfg.Store.URI = strings.TrimSpace(a.URI)
	cfg.Store.Database = strings.TrimSpace(a.Database)
	cfg.Store.Collection = strings.TrimSpace(a.Collection)

	cadence, err := ParseInterval(strings.TrimSpace(a.Cadence))
	if err != nil {
		return err
	}
	if cadence > 0 {
		cfg.Monitor.Cadence = cadence
		if cfg.Monitor.Frame > cadence {
			cfg.Monitor.Frame = cadence
		}
	}
	return nil
}

// promptError treats a user abort as a clean cancel.
func promptError(err error, w io.Writer) error {
	if stderrors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(w, "Cancelled.")
		return nil
	}
	return errors.WrapWithCode(err, errors.ErrConfig,
		"Failed to get user input",
		"Check terminal compatibility or use --non-interactive")
}
