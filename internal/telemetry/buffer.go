package telemetry

import (
	"iter"
	"sync"
)

// RecentWindow is how many of the latest readings feed the dashboard trend.
const RecentWindow = 10

// Buffer holds the complete result of the most recent successful fetch.
// One writer replaces it; any number of readers observe it. A published
// snapshot is never modified, only swapped.
type Buffer struct {
	mu        sync.RWMutex
	readings  []Reading
	populated bool
}

// NewBuffer creates an empty, never-populated buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Replace swaps in a new snapshot. The input is copied so later changes by the
// caller cannot leak into the published snapshot. An empty slice is a valid
// snapshot: the store was reachable but held no readings.
func (b *Buffer) Replace(readings []Reading) {
	next := make([]Reading, len(readings))
	copy(next, readings)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.readings = next
	b.populated = true
}

// current returns the published snapshot. Callers must not modify it.
func (b *Buffer) current() []Reading {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readings
}

// Snapshot returns a copy of the current snapshot in store order.
func (b *Buffer) Snapshot() []Reading {
	cur := b.current()
	out := make([]Reading, len(cur))
	copy(out, cur)
	return out
}

// Last returns the most recent reading in insertion order. ok is false when
// the buffer is empty or has never been populated.
func (b *Buffer) Last() (Reading, bool) {
	cur := b.current()
	if len(cur) == 0 {
		return Reading{}, false
	}
	return cur[len(cur)-1], true
}

// All returns a read-only sequence over the snapshot current at call time.
// Ranging over it again starts from the beginning of that same snapshot.
func (b *Buffer) All() iter.Seq[Reading] {
	cur := b.current()
	return func(yield func(Reading) bool) {
		for _, r := range cur {
			if !yield(r) {
				return
			}
		}
	}
}

// Recent returns up to n of the latest readings, oldest first.
func (b *Buffer) Recent(n int) []Reading {
	cur := b.current()
	if n <= 0 || len(cur) == 0 {
		return nil
	}
	start := len(cur) - n
	if start < 0 {
		start = 0
	}
	out := make([]Reading, len(cur)-start)
	copy(out, cur[start:])
	return out
}

// Len returns the number of readings in the current snapshot.
func (b *Buffer) Len() int {
	return len(b.current())
}

// Populated reports whether any fetch has ever succeeded.
func (b *Buffer) Populated() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.populated
}
