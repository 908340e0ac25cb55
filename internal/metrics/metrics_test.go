package metrics

import (
	"context"
	stderrors "errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ianfajar-codes/sensorgas/internal/logger"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readings(values ...float64) []telemetry.Reading {
	base := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	out := make([]telemetry.Reading, len(values))
	for i, v := range values {
		out[i] = telemetry.NewReading(base.Add(time.Duration(i)*time.Second), v)
	}
	return out
}

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)

	assert.Equal(t, 0.0, testutil.ToFloat64(rec.polls.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.polls.WithLabelValues("failure")))

	assert.True(t, math.IsNaN(testutil.ToFloat64(rec.lastValue)), "no value before the first fetch")
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.present))

	rec.PollSucceeded(readings(12, 40, 130.5), 40*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.polls.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.present))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.readings))
	assert.Equal(t, 130.5, testutil.ToFloat64(rec.lastValue))

	rec.PollFailed(stderrors.New("timeout"), 5*time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.polls.WithLabelValues("failure")))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.readings), "failure keeps snapshot gauges")
	assert.Equal(t, 130.5, testutil.ToFloat64(rec.lastValue))

	rec.PollSkipped()
	rec.PollSkipped()
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.skipped))

	assert.Equal(t, 1, testutil.CollectAndCount(rec.latency))
}

func TestRecorder_EmptySnapshotClearsLastValue(t *testing.T) {
	rec, err := NewRecorder(prometheus.NewRegistry())
	require.NoError(t, err)

	rec.PollSucceeded(readings(150), time.Millisecond)
	require.Equal(t, 150.0, testutil.ToFloat64(rec.lastValue))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.present))

	rec.PollSucceeded(nil, time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.readings))
	assert.True(t, math.IsNaN(testutil.ToFloat64(rec.lastValue)), "stale value must not survive an empty snapshot")
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.present))

	// A failure after the empty snapshot leaves it empty.
	rec.PollFailed(stderrors.New("timeout"), time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.present))

	rec.PollSucceeded(readings(3, 7), time.Millisecond)
	assert.Equal(t, 7.0, testutil.ToFloat64(rec.lastValue))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.present))
}

func TestRecorder_ExposedNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)
	rec.PollSucceeded(readings(1), time.Millisecond)

	count, err := testutil.GatherAndCount(reg, PollsTotal, PollsSkippedTotal, FetchDuration, SnapshotReadings, LastValuePPM, LastValuePresent)
	require.NoError(t, err)
	// two poll result series + one each for the rest
	assert.Equal(t, 7, count)
}

func TestNewRecorder_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)

	_, err = NewRecorder(reg)
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)
	rec.PollSucceeded(readings(99.5), time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), LastValuePPM+" 99.5")
	assert.Contains(t, string(body), LastValuePresent+" 1")

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", strings.TrimSpace(string(body)))
}

func TestServe(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)

	log := logger.NewBufferLogger()
	s, err := Serve("127.0.0.1:0", reg, log)
	require.NoError(t, err)

	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.True(t, log.HasLevel("info"))
}

func TestServe_BindError(t *testing.T) {
	_, err := Serve("not-an-address", prometheus.NewRegistry(), logger.Noop())
	assert.Error(t, err)
}
