package cli

import (
	"os"

	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Command-specific flags
var (
	monitorOpts    MonitorOptions
	historyOpts    HistoryOptions
	initOpts       InitOptions
	doctorOpts     DoctorOptions
	configShowJSON bool
)

// monitorCmd starts the live dashboard
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live dashboard of gas readings",
	Long: `Start the interactive dashboard. The collection is re-read on a fixed
cadence (default 2s); a slow or failing store never stacks requests, and
the last good snapshot stays on screen until the next success.

Views:
  Dashboard   Chart of the 10 latest readings with a smoothed trend
  Realtime    Latest value with a clean/dirty verdict
  History     Every reading, scrollable

Keyboard shortcuts:
  1/d 2/t 3/h        Switch view
  tab / shift+tab    Cycle views
  j/k pgup/pgdn g/G  Scroll history
  r                  Refresh on the next frame
  ?                  Help
  q / Ctrl+C         Quit

Examples:
  sensorgas monitor
  sensorgas monitor --interval 5s
  sensorgas monitor --log-file /tmp/sensorgas.log`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd.Context(), monitorOpts)
	},
}

// historyCmd prints every reading once
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the readings in the collection",
	Long: `Fetch the collection once and print every reading in store order with
its clean/dirty classification.

Examples:
  sensorgas history
  sensorgas history --limit 20
  sensorgas history --json | jq '.data.readings[-1]'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyCommand(cmd.Context(), historyOpts, cmd.OutOrStdout())
	},
}

// insertCmd appends a reading
var insertCmd = &cobra.Command{
	Use:   "insert [value]",
	Short: "Insert a reading stamped with the current time",
	Long: `Insert one gas concentration reading (ppm) with the current time as its
timestamp. Without an argument on a terminal, prompts for the value.

Examples:
  sensorgas insert 42.5
  sensorgas insert`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := InsertOptions{Interactive: term.IsTerminal(int(os.Stdin.Fd()))}
		if len(args) == 1 {
			opts.Value = args[0]
		}
		return insertCommand(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

// initCmd creates a new .sensorgas.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .sensorgas.yaml configuration",
	Long: `Create a .sensorgas.yaml file in the current directory.

Prompts for the store location and refresh cadence. The connection string
defaults to ${MONGODB_URI} so credentials can stay in the environment or a
.env file.

Examples:
  sensorgas init
  sensorgas init --non-interactive
  sensorgas init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			opts.NonInteractive = true
		}
		return Init(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

// doctorCmd diagnoses config and store problems
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, connection string, and store",
	Long: `Run diagnostics: config resolution and validation, the connection string,
store connectivity, whether the collection decodes as readings, and the
metrics address. Exits 1 when any check fails.

Examples:
  sensorgas doctor
  sensorgas doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.Context(), doctorOpts, cmd.OutOrStdout())
	},
}

// configCmd groups config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a dotted key in the nearest .sensorgas.yaml, keeping comments intact.
The file is validated before it is written.

Examples:
  sensorgas config set monitor.cadence 5s
  sensorgas config set store.collection data_sensor_lab`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetCommand(args[0], args[1], cmd.OutOrStdout())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configShowJSON {
			machineMode = true
		}
		return configShowCommand(cmd.OutOrStdout())
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for sensorgas.

Examples:
  # Bash
  sensorgas completion bash > /etc/bash_completion.d/sensorgas

  # Zsh
  sensorgas completion zsh > "${fpath[1]}/_sensorgas"

  # Fish
  sensorgas completion fish > ~/.config/fish/completions/sensorgas.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// monitor flags are shared with the bare root command
	for _, cmd := range []*cobra.Command{rootCmd, monitorCmd} {
		cmd.Flags().StringVar(&monitorOpts.Interval, "interval", "", "refresh cadence (e.g., 2s, 5s, 1m); overrides monitor.cadence")
		cmd.Flags().StringVar(&monitorOpts.LogFile, "log-file", "", "write logs here while the dashboard runs")
	}

	// history flags
	historyCmd.Flags().BoolVar(&historyOpts.JSON, "json", false, "output JSON")
	historyCmd.Flags().IntVar(&historyOpts.Limit, "limit", 0, "show only the newest N readings (0 = all)")

	// init flags
	initCmd.Flags().BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts and write defaults")

	// doctor flags
	doctorCmd.Flags().BoolVar(&doctorOpts.JSON, "json", false, "output JSON")

	// config flags
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output JSON")
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)

	// Register all commands
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}
