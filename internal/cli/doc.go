// Package cli implements the sensorgas command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a small function that loads config, opens the reading
// store, and hands off to the telemetry or monitor packages.
//
// # Command Structure
//
//	sensorgas                 - Same as "sensorgas monitor"
//	sensorgas monitor         - Live dashboard (Bubble Tea)
//	sensorgas history         - One-shot fetch printed as a table or JSON
//	sensorgas insert [value]  - Append a reading stamped with the current time
//	sensorgas init            - Create .sensorgas.yaml
//	sensorgas doctor          - Diagnose config, connection string, and store
//	sensorgas config set|show - Edit or inspect the resolved config
//	sensorgas version         - Build information
//	sensorgas completion      - Shell completion scripts
//
// # Flag Handling
//
// Global flags (--config, --no-color) are defined on the root command and
// available to all subcommands. Command-specific flags are registered in
// commands.go.
//
// # Error Handling
//
// Commands return *errors.Error values with codes and suggestions. Execute
// prints them (or a JSON envelope in --json mode) and maps ExitError to the
// process exit code.
package cli
