package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/logger"
)

// Fetcher retrieves the complete current set of readings from the store.
// Implementations bound their own latency; the poller imposes no timeout.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]Reading, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]Reading, error)

// FetchAll calls f.
func (f FetcherFunc) FetchAll(ctx context.Context) ([]Reading, error) {
	return f(ctx)
}

// Recorder observes poll outcomes. See package metrics for the Prometheus
// implementation.
type Recorder interface {
	PollSucceeded(readings []Reading, elapsed time.Duration)
	PollFailed(err error, elapsed time.Duration)
	PollSkipped()
}

type noopRecorder struct{}

func (noopRecorder) PollSucceeded([]Reading, time.Duration) {}
func (noopRecorder) PollFailed(error, time.Duration)        {}
func (noopRecorder) PollSkipped()                           {}

// FetchResult is the outcome of one fetch, carried from the worker back to
// the host loop.
type FetchResult struct {
	Readings []Reading
	Err      error
	Elapsed  time.Duration
	Finished time.Time
}

// Poller runs the refresh cycle: schedule, fetch once, replace or keep.
type Poller struct {
	sched   *Scheduler
	buf     *Buffer
	fetcher Fetcher
	log     logger.Logger
	rec     Recorder

	mu          sync.RWMutex
	lastErr     error
	lastSuccess time.Time
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(l logger.Logger) PollerOption {
	return func(p *Poller) {
		if l != nil {
			p.log = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) PollerOption {
	return func(p *Poller) {
		if r != nil {
			p.rec = r
		}
	}
}

// NewPoller wires a fetcher to a buffer through a scheduler.
func NewPoller(fetcher Fetcher, buf *Buffer, sched *Scheduler, opts ...PollerOption) *Poller {
	p := &Poller{
		sched:   sched,
		buf:     buf,
		fetcher: fetcher,
		log:     logger.Default(),
		rec:     noopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scheduler returns the poller's scheduler.
func (p *Poller) Scheduler() *Scheduler {
	return p.sched
}

// TryStart claims the refresh slot if a refresh is due at now. When it returns
// true the caller must run Fetch and hand the result to Apply.
func (p *Poller) TryStart(now time.Time) bool {
	if p.sched.Begin(now) {
		p.log.Debug("refresh due at %s", now.Format(time.TimeOnly))
		return true
	}
	if p.sched.ClaimSkip(now) {
		p.log.Debug("fetch still in flight, skipping tick")
		p.rec.PollSkipped()
	}
	return false
}

// Fetch runs the store query once. It touches no poller state and is safe to
// call from a worker goroutine.
func (p *Poller) Fetch(ctx context.Context) FetchResult {
	start := time.Now()
	readings, err := p.fetcher.FetchAll(ctx)
	finished := time.Now()
	return FetchResult{
		Readings: readings,
		Err:      err,
		Elapsed:  finished.Sub(start),
		Finished: finished,
	}
}

// Apply publishes a fetch result and releases the in-flight slot. A failed
// fetch is logged and leaves the buffer exactly as it was. The returned error
// is the (structured) fetch failure, or nil.
func (p *Poller) Apply(res FetchResult) error {
	defer p.sched.Finish()

	if res.Err != nil {
		err := res.Err
		if !errors.IsCode(err, errors.ErrFetch) {
			err = errors.WrapWithCode(err, errors.ErrFetch,
				"Couldn't refresh sensor readings",
				"Keeping the previous snapshot; will retry on the next cadence.")
		}
		p.log.Error("fetch failed after %s: %s", res.Elapsed.Round(time.Millisecond), errors.Short(err))
		p.rec.PollFailed(err, res.Elapsed)

		p.mu.Lock()
		p.lastErr = err
		p.mu.Unlock()
		return err
	}

	p.buf.Replace(res.Readings)
	p.log.Debug("fetched %d readings in %s", len(res.Readings), res.Elapsed.Round(time.Millisecond))
	p.rec.PollSucceeded(res.Readings, res.Elapsed)

	p.mu.Lock()
	p.lastErr = nil
	p.lastSuccess = res.Finished
	p.mu.Unlock()
	return nil
}

// Tick is the synchronous form of the cycle for loops that may block: if a
// refresh is due it fetches exactly once and applies the result. started
// reports whether a fetch ran.
func (p *Poller) Tick(ctx context.Context, now time.Time) (started bool, err error) {
	if !p.TryStart(now) {
		return false, nil
	}
	return true, p.Apply(p.Fetch(ctx))
}

// LastError returns the most recent fetch failure, cleared by the next success.
func (p *Poller) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// LastSuccess returns when the last successful fetch completed, zero if none.
func (p *Poller) LastSuccess() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastSuccess
}
