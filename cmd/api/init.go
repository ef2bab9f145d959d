package main

import (
	"context"

	"arithviz/internal/calculator"
	"arithviz/internal/config"
	"arithviz/internal/observability"
)

// initTelemetry initialises logging export, tracing and metric providers plus
// the calculator's metric instruments. The returned function shuts the
// providers down in reverse order.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context), error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) {
		for i := len(shutdowns) - 1; i >= 0; i-- {
			_ = shutdowns[i](ctx)
		}
	}

	if cfg.OTelEnabled {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, logShutdown)

		traceShutdown, err := observability.InitTracing(ctx)
		if err != nil {
			shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, traceShutdown)

		metricShutdown, err := observability.InitMetrics(ctx)
		if err != nil {
			shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, metricShutdown)
	}

	// Domain instruments fall back to the global no-op meter when OTel is off.
	if err := calculator.InitMetrics(); err != nil {
		shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
