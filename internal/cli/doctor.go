package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ianfajar-codes/sensorgas/internal/config"
	"github.com/ianfajar-codes/sensorgas/internal/doctor"
	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/logger"
	"github.com/ianfajar-codes/sensorgas/internal/store"
	"github.com/ianfajar-codes/sensorgas/internal/ui"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	JSON bool
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand runs every diagnostic and prints a report. Failing checks
// exit 1 without a second error message.
func doctorCommand(ctx context.Context, opts DoctorOptions, w io.Writer) error {
	if opts.JSON {
		machineMode = true
	}

	wd, err := os.Getwd()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine the working directory", "")
	}

	dlog := logger.NewEnvLogger("[doctor]")
	checks := doctor.NewConfigChecks(wd, cfgFile)

	// The .env file must be in the environment before the config is resolved
	// for the store checks. Its parse error is reported by the dotenv check.
	if err := config.LoadDotEnv(wd); err != nil {
		dlog.Debug("loading %s: %s", config.DotEnvFile, errors.Short(err))
	}

	// Store checks need a usable config; the config checks explain why not.
	if cfg, _, err := config.LoadOrDefault(cfgFile); err == nil {
		probe := doctor.NewProbe(func(ctx context.Context) (store.Store, error) {
			return openStore(ctx, cfg.Store, dlog)
		})
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			defer cancel()
			if err := probe.Close(closeCtx); err != nil {
				dlog.Warn("closing store: %v", err)
			}
		}()

		if config.Validate(cfg) == nil && cfg.Store.URI != "" {
			checks = append(checks, doctor.NewStoreChecks(probe, cfg.Store.Database+"."+cfg.Store.Collection)...)
		}
		checks = append(checks, &doctor.MetricsAddrCheck{Metrics: cfg.Metrics})
	}

	results := doctor.RunAll(ctx, checks)

	if opts.JSON {
		err = WriteJSONSuccess(w, buildDoctorOutput(checks, results))
	} else {
		renderDoctorText(w, checks, results)
	}
	if err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		return errors.NewExitError(1)
	}
	return nil
}

// buildDoctorOutput groups results by category in report order.
func buildDoctorOutput(checks []doctor.Check, results []doctor.CheckResult) DoctorOutput {
	grouped := groupResults(checks, results)

	output := DoctorOutput{Categories: []CategoryOutput{}}
	for _, cat := range doctor.Categories() {
		if rs, ok := grouped[cat]; ok {
			output.Categories = append(output.Categories, CategoryOutput{Name: cat, Results: rs})
		}
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}
	return output
}

func groupResults(checks []doctor.Check, results []doctor.CheckResult) map[string][]doctor.CheckResult {
	grouped := make(map[string][]doctor.CheckResult)
	for i, check := range checks {
		cat := check.Category()
		grouped[cat] = append(grouped[cat], results[i])
	}
	return grouped
}

// renderDoctorText outputs results in human-readable format.
func renderDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("sensorgas Diagnostic Report"))
	fmt.Fprintln(w)

	grouped := groupResults(checks, results)
	for _, category := range doctor.Categories() {
		rs, ok := grouped[category]
		if !ok {
			continue
		}
		fmt.Fprintln(w, headerStyle.Render(category))
		for _, r := range rs {
			renderCheckResult(w, r)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	if doctor.HasIssues(results) {
		fmt.Fprintf(w, "%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), doctor.Summary(results))
	} else {
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), doctor.Summary(results))
	}
	fmt.Fprintln(w)
}

// renderCheckResult renders a single check result.
func renderCheckResult(w io.Writer, result doctor.CheckResult) {
	symbol, style := ui.SymbolComplete, ui.SuccessStyle()
	switch result.Status {
	case doctor.StatusWarn:
		symbol, style = ui.SymbolWarning, ui.WarningStyle()
	case doctor.StatusFail:
		symbol, style = ui.SymbolFail, ui.ErrorStyle()
	}

	fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(w, "    %s\n", ui.MutedStyle().Render(line))
		}
	}
}
