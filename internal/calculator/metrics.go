package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	runsCounter  metric.Int64Counter
	runDuration  metric.Float64Histogram
	runSteps     metric.Int64Histogram
	errorCounter metric.Int64Counter
	resultGauge  metric.Float64Gauge
)

// InitMetrics registers custom OTel metric instruments for the trace engines.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	runsCounter, err = meter.Int64Counter("arithviz.runs.total",
		metric.WithDescription("Total number of traced calculations"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return fmt.Errorf("creating runs counter: %w", err)
	}

	runDuration, err = meter.Float64Histogram("arithviz.run.duration",
		metric.WithDescription("Time spent building a trace in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating duration histogram: %w", err)
	}

	runSteps, err = meter.Int64Histogram("arithviz.run.steps",
		metric.WithDescription("Number of steps recorded per trace"),
		metric.WithUnit("{step}"),
		metric.WithExplicitBucketBoundaries(9, 12, 17, 25, 33),
	)
	if err != nil {
		return fmt.Errorf("creating steps histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("arithviz.errors.total",
		metric.WithDescription("Total number of rejected calculations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("arithviz.last_result",
		metric.WithDescription("The final value of the last traced calculation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}
