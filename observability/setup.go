package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Providers holds the tracer and meter providers created by Setup.
type Providers struct {
	Tracer *sdktrace.TracerProvider
	Meter  *sdkmetric.MeterProvider
}

// Setup initializes both providers from cfg.
func Setup(ctx context.Context, cfg Config, serviceName, serviceVersion, environment string) (*Providers, error) {
	tp, err := InitTracer(ctx, cfg.TracerConfig(serviceName, serviceVersion, environment))
	if err != nil {
		return nil, err
	}

	mp, err := InitMeter(ctx, cfg.MeterConfig(serviceName, serviceVersion, environment))
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return &Providers{Tracer: tp, Meter: mp}, nil
}

// Observer builds a DIObserver on the providers.
func (p *Providers) Observer(attrs ...attribute.KeyValue) (*DIObserver, error) {
	obs, err := NewDIObserver(
		p.Tracer.Tracer(instrumentationName),
		p.Meter.Meter(instrumentationName),
		attrs...,
	)
	if err != nil {
		return nil, fmt.Errorf("creating container observer: %w", err)
	}
	return obs, nil
}

// Shutdown flushes and stops both providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(p.Tracer.Shutdown(ctx), p.Meter.Shutdown(ctx))
}
