package cli

import (
	"fmt"
	"io"

	"github.com/ianfajar-codes/sensorgas/internal/config"
	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/ui"
	"gopkg.in/yaml.v3"
)

// configSetCommand writes one dotted key into the nearest config file.
func configSetCommand(key, value string, w io.Writer) error {
	path, err := config.Find(cfgFile)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"Couldn't find a "+config.ConfigFileName+" to update",
			"Run 'sensorgas init' first, or pass --config")
	}

	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to set %s", key),
			"Keys look like monitor.cadence or store.database; values must pass validation")
	}

	fmt.Fprintf(w, "%s Set %s = %s in %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), key, value, path)
	return nil
}

// configShowCommand prints the resolved config with credentials redacted.
func configShowCommand(w io.Writer) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	shown := *cfg
	shown.Store.URI = config.RedactURI(shown.Store.URI)

	if MachineMode() {
		return WriteJSONSuccess(w, map[string]interface{}{
			"path":   path,
			"config": shown,
		})
	}

	source := path
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintln(w, ui.MutedStyle().Render("# resolved from "+source))

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(shown); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config",
			"This is a bug; please report it")
	}
	return enc.Close()
}
