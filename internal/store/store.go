// Package store reads and writes gas readings in the MongoDB collection the
// sensor pipeline populates. Each document is {timestamp: Date, value: double}.
package store

import (
	"context"

	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
)

// Inserter appends a single reading stamped with the current time.
type Inserter interface {
	InsertReading(ctx context.Context, ppm float64) error
}

// Store is the full surface the CLI needs from a reading store.
type Store interface {
	telemetry.Fetcher
	Inserter
	Close(ctx context.Context) error
}

// Field names in the reading documents.
const (
	FieldTimestamp = "timestamp"
	FieldValue     = "value"
)
