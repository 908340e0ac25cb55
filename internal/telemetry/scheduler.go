package telemetry

import (
	"sync"
	"time"
)

// DefaultCadence is the minimum interval between poll attempts. Short enough
// for a live readout, long enough not to hammer the store.
const DefaultCadence = 2 * time.Second

// MinCadence is the smallest cadence accepted from configuration.
const MinCadence = 500 * time.Millisecond

// Scheduler decides when a refresh is due and tracks the single in-flight
// fetch. It does no I/O and starts no goroutines; the host loop drives it.
type Scheduler struct {
	mu          sync.Mutex
	cadence     time.Duration
	lastRefresh time.Time
	attempted   bool
	pending     bool
	skipClaimed bool
}

// NewScheduler creates a scheduler. A non-positive cadence uses DefaultCadence.
func NewScheduler(cadence time.Duration) *Scheduler {
	if cadence <= 0 {
		cadence = DefaultCadence
	}
	return &Scheduler{cadence: cadence}
}

// Cadence returns the configured refresh interval.
func (s *Scheduler) Cadence() time.Duration {
	return s.cadence
}

// Due reports whether a refresh should start at now. The first call is always
// due; after that, strictly more than one cadence must have elapsed since the
// last attempt, and no fetch may be pending.
func (s *Scheduler) Due(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dueLocked(now)
}

func (s *Scheduler) dueLocked(now time.Time) bool {
	if s.pending {
		return false
	}
	if !s.attempted {
		return true
	}
	return now.Sub(s.lastRefresh) > s.cadence
}

// Begin claims the refresh slot if one is due at now. It records now as the
// last refresh whether or not the fetch later succeeds.
func (s *Scheduler) Begin(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dueLocked(now) {
		return false
	}
	s.lastRefresh = now
	s.attempted = true
	s.pending = true
	s.skipClaimed = false
	return true
}

// Finish releases the in-flight slot.
func (s *Scheduler) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	s.skipClaimed = false
}

// ClaimSkip reports whether the pending fetch has just overrun its cadence at
// now. It returns true at most once per pending fetch, so a slow fetch spanning
// many frame ticks counts as a single skipped refresh.
func (s *Scheduler) ClaimSkip(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending || s.skipClaimed || now.Sub(s.lastRefresh) <= s.cadence {
		return false
	}
	s.skipClaimed = true
	return true
}

// Pending reports whether a fetch is in flight.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// LastRefresh returns the time of the last attempt, zero if none.
func (s *Scheduler) LastRefresh() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRefresh
}

// Expire makes the next tick due regardless of elapsed time. A pending fetch
// still blocks a new one.
func (s *Scheduler) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempted = false
}
