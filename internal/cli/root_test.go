package cli

import (
	stderrors "errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{`unknown command "moniter" for "sensorgas"`, true},
		{`unknown flag: --bogus`, true},
		{`accepts at most 1 arg(s), received 2`, false},
		{`✗ Couldn't refresh sensor readings`, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(stderrors.New(tt.msg)))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	assert.Equal(t, "moniter", extractUnknownCommand(stderrors.New(`unknown command "moniter" for "sensorgas"`)))
	assert.Equal(t, "", extractUnknownCommand(stderrors.New("unknown flag: --bogus")))
	assert.Equal(t, "", extractUnknownCommand(stderrors.New(`unknown command "unterminated`)))
}

func TestHandleError(t *testing.T) {
	old := machineMode
	machineMode = false
	t.Cleanup(func() { machineMode = old })

	assert.Equal(t, 0, handleError(nil))
	assert.Equal(t, 3, handleError(errors.NewExitError(3)))
	assert.Equal(t, 2, handleError(stderrors.New(`unknown command "histroy" for "sensorgas"`)))
	assert.Equal(t, 1, handleError(errors.New(errors.ErrConfig, "bad config", "")))
}

func TestApplyColorMode(t *testing.T) {
	orig := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(orig) })

	tests := []struct {
		name string
		mode string
		tty  bool
		want termenv.Profile
	}{
		{"never on a terminal", "never", true, termenv.Ascii},
		{"always when piped", "always", false, termenv.ANSI256},
		{"auto when piped", "auto", false, termenv.Ascii},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lipgloss.SetColorProfile(termenv.TrueColor)
			applyColorMode(tt.mode, tt.tty)
			assert.Equal(t, tt.want, lipgloss.ColorProfile())
		})
	}

	t.Run("auto on a terminal leaves the profile alone", func(t *testing.T) {
		lipgloss.SetColorProfile(termenv.TrueColor)
		applyColorMode("auto", true)
		assert.Equal(t, termenv.TrueColor, lipgloss.ColorProfile())
	})
}

func TestRootCommandRegistration(t *testing.T) {
	want := []string{"monitor", "history", "insert", "init", "doctor", "config", "completion", "version"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, name := range []string{"set", "show"} {
		cmd, _, err := rootCmd.Find([]string{"config", name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestMonitorFlagsOnRoot(t *testing.T) {
	for _, flag := range []string{"interval", "log-file"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(flag), "root --%s", flag)
		assert.NotNil(t, monitorCmd.Flags().Lookup(flag), "monitor --%s", flag)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("no-color"))
}
