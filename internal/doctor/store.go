package doctor

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/store"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
	"github.com/ianfajar-codes/sensorgas/internal/util"
)

// OpenFunc connects to the reading store.
type OpenFunc func(ctx context.Context) (store.Store, error)

// Probe shares one store connection between the store checks. The first
// check to run opens it.
type Probe struct {
	open OpenFunc

	once  sync.Once
	store store.Store
	err   error
}

// NewProbe creates a probe that connects with open on first use.
func NewProbe(open OpenFunc) *Probe {
	return &Probe{open: open}
}

func (p *Probe) connect(ctx context.Context) (store.Store, error) {
	p.once.Do(func() {
		p.store, p.err = p.open(ctx)
	})
	return p.store, p.err
}

// Close disconnects if a connection was made.
func (p *Probe) Close(ctx context.Context) error {
	if p.store == nil {
		return nil
	}
	return p.store.Close(ctx)
}

// StoreConnectCheck verifies the store accepts a connection.
type StoreConnectCheck struct {
	Probe  *Probe
	Target string // database.collection, for messages
}

func (c *StoreConnectCheck) Name() string     { return "store_connect" }
func (c *StoreConnectCheck) Category() string { return CategoryStore }

func (c *StoreConnectCheck) Run(ctx context.Context) CheckResult {
	if _, err := c.Probe.connect(ctx); err != nil {
		suggestion := "Check the connection string and that the server is reachable"
		var sgErr *errors.Error
		if stderrors.As(err, &sgErr) && sgErr.Suggestion != "" {
			suggestion = sgErr.Suggestion
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Short(err),
			Suggestion: suggestion,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Connected to " + c.Target,
	}
}

// StoreReadingsCheck reads the collection once and reports what a refresh
// would show.
type StoreReadingsCheck struct {
	Probe *Probe
}

func (c *StoreReadingsCheck) Name() string     { return "store_readings" }
func (c *StoreReadingsCheck) Category() string { return CategoryStore }

func (c *StoreReadingsCheck) Run(ctx context.Context) CheckResult {
	s, err := c.Probe.connect(ctx)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: "Cannot read readings: not connected",
		}
	}

	readings, err := s.FetchAll(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Short(err),
			Suggestion: "Every document needs a 'timestamp' date and a numeric 'value'",
		}
	}

	if len(readings) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Collection is empty",
			Suggestion: "Insert a test reading with 'sensorgas insert 42.5'",
		}
	}

	last := readings[len(readings)-1]
	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("%s, latest %.2f ppm (%s)",
			util.CountNoun(len(readings), "reading", "readings"), last.Value(), telemetry.StatusOf(last, true)),
	}
}

// NewStoreChecks creates the store checks sharing probe.
func NewStoreChecks(probe *Probe, target string) []Check {
	return []Check{
		&StoreConnectCheck{Probe: probe, Target: target},
		&StoreReadingsCheck{Probe: probe},
	}
}
