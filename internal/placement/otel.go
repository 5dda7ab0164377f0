// internal/placement/otel.go
package placement

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/OCAP2/playerstart/internal/placement"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type instruments struct {
	runs     metric.Int64Counter
	attempts metric.Int64Counter
	failures metric.Int64Counter
}

// newInstruments uses the global meter, falling back to no-op counters.
func newInstruments() *instruments {
	m := meter()
	var noopMeter noop.Meter

	runs, err := m.Int64Counter("placement.runs",
		metric.WithDescription("Placement runs by status"))
	if err != nil {
		runs, _ = noopMeter.Int64Counter("placement.runs")
	}
	attempts, err := m.Int64Counter("placement.spawn.attempts",
		metric.WithDescription("Spawn requests sent to the editor"))
	if err != nil {
		attempts, _ = noopMeter.Int64Counter("placement.spawn.attempts")
	}
	failures, err := m.Int64Counter("placement.spawn.failures",
		metric.WithDescription("Spawn requests that produced no actor"))
	if err != nil {
		failures, _ = noopMeter.Int64Counter("placement.spawn.failures")
	}

	return &instruments{runs: runs, attempts: attempts, failures: failures}
}

func (i *instruments) recordRun(ctx context.Context, r Report) {
	i.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(r.Status))))
}

func (i *instruments) recordAttempt(ctx context.Context, ok bool) {
	i.attempts.Add(ctx, 1)
	if !ok {
		i.failures.Add(ctx, 1)
	}
}
