package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFetchHistory(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{"default size", 0, DefaultHistorySize},
		{"negative size", -1, DefaultHistorySize},
		{"custom size", 100, 100},
		{"small size", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewFetchHistory(tt.size)
			require.NotNil(t, h)
			assert.Equal(t, tt.expected, h.latency.size)
			assert.Equal(t, 0, h.Count())
		})
	}
}

func TestFetchHistory_Push(t *testing.T) {
	h := NewFetchHistory(10)

	h.Push(12*time.Millisecond, true)
	h.Push(1500*time.Microsecond, false)

	assert.Equal(t, 2, h.Count())
	assert.Equal(t, []float64{12, 1.5}, h.Latencies(10))

	last, ok := h.LastLatency()
	require.True(t, ok)
	assert.Equal(t, 1500*time.Microsecond, last)
	assert.Equal(t, 0.5, h.SuccessRatio())
}

func TestFetchHistory_Empty(t *testing.T) {
	h := NewFetchHistory(5)

	_, ok := h.LastLatency()
	assert.False(t, ok)
	assert.Nil(t, h.Latencies(5))
	assert.Equal(t, 1.0, h.SuccessRatio())
}

func TestFetchHistory_Overflow(t *testing.T) {
	h := NewFetchHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(time.Duration(i)*time.Millisecond, i%2 == 0)
	}

	assert.Equal(t, 3, h.Count())
	assert.Equal(t, []float64{3, 4, 5}, h.Latencies(3))
	// outcomes retained: 3 fail, 4 ok, 5 fail
	assert.InDelta(t, 1.0/3.0, h.SuccessRatio(), 1e-9)
}

func TestFetchHistory_Concurrency(t *testing.T) {
	h := NewFetchHistory(100)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.Push(time.Duration(j)*time.Millisecond, j%3 != 0)
			}
		}()
	}

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.Latencies(10)
				h.SuccessRatio()
				h.Count()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 100, h.Count())
}

func TestRingBuffer(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		rb := newRingBuffer(5)
		assert.Equal(t, 0, rb.count)

		rb.push(1.0)
		rb.push(2.0)
		rb.push(3.0)

		assert.Equal(t, 3, rb.count)
		assert.Equal(t, []float64{1.0, 2.0, 3.0}, rb.getAll())
	})

	t.Run("overflow wrapping", func(t *testing.T) {
		rb := newRingBuffer(3)

		rb.push(1.0)
		rb.push(2.0)
		rb.push(3.0)
		rb.push(4.0) // Overwrites 1.0
		rb.push(5.0) // Overwrites 2.0

		assert.Equal(t, 3, rb.count)
		assert.Equal(t, []float64{3.0, 4.0, 5.0}, rb.getAll())
	})

	t.Run("getLast partial", func(t *testing.T) {
		rb := newRingBuffer(10)
		for i := 1; i <= 7; i++ {
			rb.push(float64(i))
		}

		assert.Equal(t, []float64{5.0, 6.0, 7.0}, rb.getLast(3))
		assert.Equal(t, []float64{3.0, 4.0, 5.0, 6.0, 7.0}, rb.getLast(5))
	})

	t.Run("getLast more than available", func(t *testing.T) {
		rb := newRingBuffer(10)
		rb.push(1.0)
		rb.push(2.0)

		assert.Equal(t, []float64{1.0, 2.0}, rb.getLast(10))
	})

	t.Run("getLast zero or negative", func(t *testing.T) {
		rb := newRingBuffer(5)
		rb.push(1.0)

		assert.Nil(t, rb.getLast(0))
		assert.Nil(t, rb.getLast(-1))
	})

	t.Run("empty buffer", func(t *testing.T) {
		rb := newRingBuffer(5)

		assert.Nil(t, rb.getLast(1))
		assert.Nil(t, rb.getAll())
	})
}
