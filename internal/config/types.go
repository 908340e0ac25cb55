package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Default store location, matching the deployed sensor pipeline.
const (
	DefaultDatabase   = "sensor_gas"
	DefaultCollection = "data_sensor"
)

// Config represents the complete .sensorgas.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Monitor MonitorConfig `yaml:"monitor" mapstructure:"monitor"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// StoreConfig locates the reading collection.
type StoreConfig struct {
	// URI is the MongoDB connection string. Supports ${VAR} expansion and is
	// overridden by the MONGODB_URI environment variable.
	URI string `yaml:"uri" mapstructure:"uri"`

	Database   string `yaml:"database" mapstructure:"database"`
	Collection string `yaml:"collection" mapstructure:"collection"`

	// ConnectTimeout bounds the initial connect and ping.
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`

	// FetchTimeout bounds a single full-collection read.
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`
}

// MonitorConfig controls the refresh loop.
type MonitorConfig struct {
	// Cadence is the minimum interval between refreshes.
	Cadence time.Duration `yaml:"cadence" mapstructure:"cadence"`

	// Frame is how often the host loop wakes to check for due work.
	Frame time.Duration `yaml:"frame" mapstructure:"frame"`

	// LogFile receives log output while the TUI owns the terminal.
	LogFile string `yaml:"log_file,omitempty" mapstructure:"log_file"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Addr    string `yaml:"addr" mapstructure:"addr"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Store: StoreConfig{
			URI:            "${MONGODB_URI}",
			Database:       DefaultDatabase,
			Collection:     DefaultCollection,
			ConnectTimeout: 10 * time.Second,
			FetchTimeout:   5 * time.Second,
		},
		Monitor: MonitorConfig{
			Cadence: 2 * time.Second,
			Frame:   250 * time.Millisecond,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9464",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
