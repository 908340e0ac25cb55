package doctor

import (
	"context"
	"net"

	"github.com/ianfajar-codes/sensorgas/internal/config"
)

// MetricsAddrCheck verifies the metrics listen address is free when the
// endpoint is enabled.
type MetricsAddrCheck struct {
	Metrics config.MetricsConfig
}

func (c *MetricsAddrCheck) Name() string     { return "metrics_addr" }
func (c *MetricsAddrCheck) Category() string { return CategoryMetrics }

func (c *MetricsAddrCheck) Run(context.Context) CheckResult {
	if !c.Metrics.Enabled {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Metrics endpoint disabled",
		}
	}

	ln, err := net.Listen("tcp", c.Metrics.Addr)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Cannot listen on " + c.Metrics.Addr + ": " + err.Error(),
			Suggestion: "Pick a free port with 'sensorgas config set metrics.addr 127.0.0.1:9465'",
		}
	}
	ln.Close()

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Metrics will be served on http://" + c.Metrics.Addr + "/metrics",
	}
}
