package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ianfajar-codes/sensorgas/internal/config"
	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Global flags
var (
	cfgFile     string
	noColorFlag bool
)

// rootCmd is the base command. Run without a subcommand it starts the monitor.
var rootCmd = &cobra.Command{
	Use:   "sensorgas",
	Short: "Live gas concentration monitor",
	Long: `sensorgas watches a MongoDB collection of gas sensor readings and shows
them as a live terminal dashboard: a chart of the latest readings with a
smoothed trend, the current value with a clean/dirty verdict, and the full
history.

Readings at or above 100 ppm are classified as dirty.

The connection string comes from MONGODB_URI (environment or .env file) or
store.uri in .sensorgas.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag || os.Getenv("NO_COLOR") != "" {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd.Context(), monitorOpts)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: search for "+config.ConfigFileName+")")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits the process on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	os.Exit(handleError(err))
}

// handleError prints err and returns the process exit code.
func handleError(err error) int {
	if err == nil {
		return 0
	}

	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	if isUnknownCommandError(err) {
		fmt.Fprintln(os.Stderr, err)
		if name := extractUnknownCommand(err); name != "" {
			if suggestions := rootCmd.SuggestionsFor(name); len(suggestions) > 0 {
				fmt.Fprintf(os.Stderr, "\nDid you mean %q?\n", suggestions[0])
			}
		}
		fmt.Fprintln(os.Stderr, "\nRun 'sensorgas --help' for usage.")
		return 2
	}

	if MachineMode() {
		_ = WriteJSONFromError(os.Stdout, err)
		return 1
	}

	fmt.Fprint(os.Stderr, err.Error())
	return 1
}

// isUnknownCommandError reports whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "sensorgas"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// loadConfig reads .env from the working directory, then resolves, loads, and
// validates the config. Output color follows output.color unless --no-color
// already forced it off.
func loadConfig() (*config.Config, string, error) {
	if wd, err := os.Getwd(); err == nil {
		if err := config.LoadDotEnv(wd); err != nil {
			return nil, "", err
		}
	}

	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}

	if !noColorFlag {
		applyColorMode(cfg.Output.Color, term.IsTerminal(int(os.Stdout.Fd())))
	}
	return cfg, path, nil
}

// applyColorMode sets the lipgloss profile for the configured mode.
func applyColorMode(mode string, stdoutIsTTY bool) {
	switch mode {
	case "never":
		ui.DisableColors()
	case "always":
		ui.ForceColors()
	default:
		if !stdoutIsTTY {
			ui.DisableColors()
		}
	}
}
