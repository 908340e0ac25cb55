// Package metrics exports poll outcomes as Prometheus metrics.
package metrics

import (
	"math"
	"time"

	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names.
const (
	PollsTotal        = "sensorgas_polls_total"
	PollsSkippedTotal = "sensorgas_polls_skipped_total"
	FetchDuration     = "sensorgas_fetch_duration_seconds"
	SnapshotReadings  = "sensorgas_snapshot_readings"
	LastValuePPM      = "sensorgas_last_value_ppm"
	LastValuePresent  = "sensorgas_last_value_present"
)

// Recorder implements telemetry.Recorder on Prometheus collectors.
type Recorder struct {
	polls     *prometheus.CounterVec
	skipped   prometheus.Counter
	latency   prometheus.Histogram
	readings  prometheus.Gauge
	lastValue prometheus.Gauge
	present   prometheus.Gauge
}

var _ telemetry.Recorder = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PollsTotal,
			Help: "Completed store fetches by result.",
		}, []string{"result"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: PollsSkippedTotal,
			Help: "Refreshes that came due while a fetch was still in flight.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    FetchDuration,
			Help:    "Wall time of a full-collection fetch.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		readings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: SnapshotReadings,
			Help: "Readings in the current snapshot.",
		}),
		lastValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: LastValuePPM,
			Help: "Concentration of the newest reading in ppm. NaN when the snapshot is empty.",
		}),
		present: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: LastValuePresent,
			Help: "1 when the current snapshot has a newest reading, 0 otherwise.",
		}),
	}
	r.lastValue.Set(math.NaN())

	for _, c := range []prometheus.Collector{r.polls, r.skipped, r.latency, r.readings, r.lastValue, r.present} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	// Pre-create both label values so dashboards see zeros instead of gaps.
	r.polls.WithLabelValues("success")
	r.polls.WithLabelValues("failure")

	return r, nil
}

// PollSucceeded records a successful fetch and the new snapshot's shape.
func (r *Recorder) PollSucceeded(readings []telemetry.Reading, elapsed time.Duration) {
	r.polls.WithLabelValues("success").Inc()
	r.latency.Observe(elapsed.Seconds())
	r.readings.Set(float64(len(readings)))
	n := len(readings)
	if n == 0 {
		// An emptied collection must not keep advertising the previous newest value.
		r.lastValue.Set(math.NaN())
		r.present.Set(0)
		return
	}
	r.lastValue.Set(readings[n-1].Value())
	r.present.Set(1)
}

// PollFailed records a failed fetch. Snapshot gauges keep their values since
// the snapshot itself is unchanged.
func (r *Recorder) PollFailed(_ error, elapsed time.Duration) {
	r.polls.WithLabelValues("failure").Inc()
	r.latency.Observe(elapsed.Seconds())
}

// PollSkipped records a refresh deferred by an in-flight fetch.
func (r *Recorder) PollSkipped() {
	r.skipped.Inc()
}
