package monitor

import (
	"sync"
	"time"
)

// DefaultHistorySize is the default number of fetch outcomes to retain.
const DefaultHistorySize = 30

// FetchHistory keeps recent fetch latencies and outcomes in ring buffers for
// the header's latency sparkline and success ratio.
type FetchHistory struct {
	mu       sync.RWMutex
	latency  *ringBuffer // milliseconds
	outcomes *ringBuffer // 1 success, 0 failure
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewFetchHistory creates a history with the specified buffer size.
func NewFetchHistory(size int) *FetchHistory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &FetchHistory{
		latency:  newRingBuffer(size),
		outcomes: newRingBuffer(size),
	}
}

// Push records one completed fetch.
func (h *FetchHistory) Push(elapsed time.Duration, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latency.push(float64(elapsed) / float64(time.Millisecond))
	if ok {
		h.outcomes.push(1)
	} else {
		h.outcomes.push(0)
	}
}

// Latencies returns the last count latencies in milliseconds, oldest first.
func (h *FetchHistory) Latencies(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latency.getLast(count)
}

// LastLatency returns the most recent latency, ok=false when empty.
func (h *FetchHistory) LastLatency() (time.Duration, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	last := h.latency.getLast(1)
	if len(last) == 0 {
		return 0, false
	}
	return time.Duration(last[0] * float64(time.Millisecond)), true
}

// SuccessRatio returns the fraction of retained fetches that succeeded,
// or 1 when nothing has been recorded.
func (h *FetchHistory) SuccessRatio() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	all := h.outcomes.getAll()
	if len(all) == 0 {
		return 1
	}
	var sum float64
	for _, v := range all {
		sum += v
	}
	return sum / float64(len(all))
}

// Count returns the number of retained fetches.
func (h *FetchHistory) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latency.count
}

// newRingBuffer creates a new ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value to the ring buffer.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head points to the next write position, so the most recent value is at head-1
	start := (r.head - count + r.size) % r.size

	for i := 0; i < count; i++ {
		idx := (start + i) % r.size
		result[i] = r.data[idx]
	}

	return result
}

// getAll returns all stored values in chronological order.
func (r *ringBuffer) getAll() []float64 {
	return r.getLast(r.count)
}
