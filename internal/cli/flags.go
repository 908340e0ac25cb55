package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
)

// ParseInterval parses the --interval flag. Returns zero duration if the flag
// is empty, meaning "use the configured cadence".
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %s", flag),
			"Use a valid duration like 2s, 5s, or 1m")
	}
	if d < telemetry.MinCadence {
		return 0, errors.New(errors.ErrConfig,
			"Interval too short",
			fmt.Sprintf("Minimum interval is %s to avoid hammering the store", telemetry.MinCadence))
	}
	return d, nil
}

// ParseValue parses a reading value in ppm. Concentrations are finite and
// non-negative.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("value is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value must be finite")
	}
	if v < 0 {
		return 0, fmt.Errorf("value must be non-negative")
	}
	return v, nil
}

// ParseLimit validates the --limit flag. Zero means no limit.
func ParseLimit(n int) error {
	if n < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid limit: %d", n),
			"Use 0 for all readings or a positive count")
	}
	return nil
}
