// Package testing provides test doubles for the store package.
package testing

import (
	"context"
	"sync"
	"time"

	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
)

// InsertCall records a call to InsertReading.
type InsertCall struct {
	Value   float64
	Success bool
}

// FakeStore simulates the reading collection for testing.
type FakeStore struct {
	mu sync.Mutex

	// Configuration
	ShouldFail     bool
	FailError      error
	InsertFail     bool
	SimulatedDelay time.Duration // Delay before FetchAll returns
	Clock          func() time.Time

	// Call tracking
	FetchCalls  int
	InsertCalls []InsertCall
	Closed      bool

	readings []telemetry.Reading
}

// NewFakeStore creates a store holding readings that succeeds by default.
func NewFakeStore(readings ...telemetry.Reading) *FakeStore {
	return &FakeStore{
		readings: append([]telemetry.Reading(nil), readings...),
		Clock:    time.Now,
	}
}

// FetchAll returns a copy of the stored readings, or the configured failure.
// A simulated delay is cut short by ctx.
func (s *FakeStore) FetchAll(ctx context.Context) ([]telemetry.Reading, error) {
	s.mu.Lock()
	s.FetchCalls++
	delay := s.SimulatedDelay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "Fetch cancelled")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ShouldFail {
		if s.FailError != nil {
			return nil, s.FailError
		}
		return nil, errors.New(errors.ErrFetch,
			"Fetch failed",
			"Configured to fail in test")
	}

	out := make([]telemetry.Reading, len(s.readings))
	copy(out, s.readings)
	return out, nil
}

// InsertReading appends a reading stamped by Clock.
func (s *FakeStore) InsertReading(_ context.Context, ppm float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.InsertFail {
		s.InsertCalls = append(s.InsertCalls, InsertCall{Value: ppm})
		return errors.New(errors.ErrInsert,
			"Insert failed",
			"Configured to fail in test")
	}

	s.InsertCalls = append(s.InsertCalls, InsertCall{Value: ppm, Success: true})
	s.readings = append(s.readings, telemetry.NewReading(s.Clock(), ppm))
	return nil
}

// Close marks the store closed.
func (s *FakeStore) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

// SetReadings replaces the stored readings.
func (s *FakeStore) SetReadings(readings ...telemetry.Reading) *FakeStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = append([]telemetry.Reading(nil), readings...)
	return s
}

// SetFail configures the store to fail fetches.
func (s *FakeStore) SetFail(err error) *FakeStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ShouldFail = true
	s.FailError = err
	return s
}

// SetDelay configures a delay before FetchAll returns.
func (s *FakeStore) SetDelay(d time.Duration) *FakeStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SimulatedDelay = d
	return s
}

// Recover clears any configured failure.
func (s *FakeStore) Recover() *FakeStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ShouldFail = false
	s.FailError = nil
	s.InsertFail = false
	return s
}

// Fetches returns how many times FetchAll was called.
func (s *FakeStore) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.FetchCalls
}

// SuccessfulInserts returns the number of inserts that succeeded.
func (s *FakeStore) SuccessfulInserts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, call := range s.InsertCalls {
		if call.Success {
			count++
		}
	}
	return count
}
