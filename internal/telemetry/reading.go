package telemetry

import "time"

// Reading is a single timestamped gas-concentration sample. The zero value is
// not a valid reading; use NewReading.
type Reading struct {
	timestamp time.Time
	value     float64
}

// NewReading builds a Reading. The timestamp is normalized to UTC with
// millisecond precision, matching what the store can represent.
func NewReading(ts time.Time, ppm float64) Reading {
	return Reading{
		timestamp: ts.UTC().Truncate(time.Millisecond),
		value:     ppm,
	}
}

// Timestamp returns when the sample was taken (UTC).
func (r Reading) Timestamp() time.Time {
	return r.timestamp
}

// Value returns the concentration in ppm.
func (r Reading) Value() float64 {
	return r.value
}

// Values extracts the concentration values from readings, preserving order.
func Values(readings []Reading) []float64 {
	if len(readings) == 0 {
		return nil
	}
	out := make([]float64, len(readings))
	for i, r := range readings {
		out[i] = r.value
	}
	return out
}
