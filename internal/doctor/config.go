package doctor

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianfajar-codes/sensorgas/internal/config"
	"github.com/ianfajar-codes/sensorgas/internal/errors"
)

// DotEnvCheck loads the .env file in Dir and fails if it cannot be parsed.
// Without it a malformed file would only surface as a missing connection string.
type DotEnvCheck struct {
	Dir string
}

func (c *DotEnvCheck) Name() string     { return "dotenv" }
func (c *DotEnvCheck) Category() string { return CategoryConfig }

func (c *DotEnvCheck) Run(context.Context) CheckResult {
	path := filepath.Join(c.Dir, config.DotEnvFile)
	if _, err := os.Stat(path); stderrors.Is(err, fs.ErrNotExist) {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No " + config.DotEnvFile + " file, using the environment only",
		}
	}

	if err := config.LoadDotEnv(c.Dir); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Short(err),
			Suggestion: fmt.Sprintf("Each line of %s must be KEY=value, e.g. %s=mongodb://host:27017", config.DotEnvFile, config.URIEnv),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Loaded " + config.DotEnvFile,
	}
}

// ConfigFileCheck reports which config file is in effect. A missing file is
// only a warning since the defaults point at the deployed collection.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Short(err),
			Suggestion: "Check the --config path, or run 'sensorgas init' to create a config",
		}
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file found, using built-in defaults",
			Suggestion: "Run 'sensorgas init' to create a " + config.ConfigFileName,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", filepath.Base(path)),
	}
}

// ConfigSchemaCheck loads and validates the resolved config.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run(context.Context) CheckResult {
	cfg, _, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Short(err),
			Suggestion: "Check the YAML syntax in your config file",
		}
	}

	if err := config.Validate(cfg); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Schema error: %s", errors.Short(err)),
			Suggestion: "Fix the value, or use 'sensorgas config set <key> <value>'",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Schema valid (%s.%s, every %s)", cfg.Store.Database, cfg.Store.Collection, cfg.Monitor.Cadence),
	}
}

// URICheck verifies a connection string resolves, without printing secrets.
type URICheck struct {
	ConfigPath string
}

func (c *URICheck) Name() string     { return "store_uri" }
func (c *URICheck) Category() string { return CategoryConfig }

func (c *URICheck) Run(context.Context) CheckResult {
	cfg, _, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: "Cannot check the connection string: config load error",
		}
	}

	uri := strings.TrimSpace(cfg.Store.URI)
	if uri == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "No connection string",
			Suggestion: fmt.Sprintf("Set %s in your environment or %s", config.URIEnv, config.DotEnvFile),
		}
	}

	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Connection string has an unknown scheme: %s", config.RedactURI(uri)),
			Suggestion: "Use a mongodb:// or mongodb+srv:// URI",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Connection string: " + config.RedactURI(uri),
	}
}

// NewConfigChecks creates all config-related checks. dir is where the .env
// file is looked up.
func NewConfigChecks(dir, configPath string) []Check {
	return []Check{
		&DotEnvCheck{Dir: dir},
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
		&URICheck{ConfigPath: configPath},
	}
}
