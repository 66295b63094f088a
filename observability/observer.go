package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/ioc/di"
	apperrors "github.com/kbukum/ioc/errors"
)

// Metric names emitted by DIObserver.
const (
	MetricConstructions    = "di.constructions.total"
	MetricConstructionTime = "di.construction.duration"
	MetricResolutionErrors = "di.resolution.errors"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// DIObserver reports container activity to OpenTelemetry. Every Provide
// becomes a di.resolve span, nested under the span of the binding that
// needed it, and every constructor run is counted and timed.
type DIObserver struct {
	tracer        trace.Tracer
	constructions metric.Int64Counter
	duration      metric.Float64Histogram
	errors        metric.Int64Counter
	attrs         []attribute.KeyValue
}

var _ di.Observer = (*DIObserver)(nil)

// NewDIObserver creates the observer and its instruments on meter. attrs
// are added to every span and data point.
func NewDIObserver(tracer trace.Tracer, meter metric.Meter, attrs ...attribute.KeyValue) (*DIObserver, error) {
	constructions, err := meter.Int64Counter(MetricConstructions,
		metric.WithDescription("Constructor invocations by target and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricConstructions, err)
	}

	duration, err := meter.Float64Histogram(MetricConstructionTime,
		metric.WithDescription("Duration of constructor invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricConstructionTime, err)
	}

	resolutionErrors, err := meter.Int64Counter(MetricResolutionErrors,
		metric.WithDescription("Failed resolutions by key and error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricResolutionErrors, err)
	}

	return &DIObserver{
		tracer:        tracer,
		constructions: constructions,
		duration:      duration,
		errors:        resolutionErrors,
		attrs:         attrs,
	}, nil
}

// ResolveStart opens a di.resolve span for key.
func (o *DIObserver) ResolveStart(ctx context.Context, key di.Key) context.Context {
	ctx, _ = o.tracer.Start(ctx, SpanResolve, trace.WithAttributes(
		append([]attribute.KeyValue{attribute.String(AttrKey, key.String())}, o.attrs...)...,
	))
	return ctx
}

// ResolveEnd closes the span opened by ResolveStart. A failure is recorded
// on the span and counted; every level of a nested failure is counted
// under its own key.
func (o *DIObserver) ResolveEnd(ctx context.Context, key di.Key, found bool, err error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Bool(AttrFound, found))
	if err != nil {
		code := apperrors.From(err).Code
		span.RecordError(err)
		span.SetStatus(codes.Error, string(code))
		o.errors.Add(ctx, 1, metric.WithAttributes(
			append([]attribute.KeyValue{
				attribute.String(AttrKey, key.String()),
				attribute.String(AttrErrorCode, string(code)),
			}, o.attrs...)...,
		))
	}
	span.End()
}

// Constructed counts and times one constructor run and adds an event to
// the enclosing resolve span.
func (o *DIObserver) Constructed(ctx context.Context, target, constructor string, d time.Duration, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}

	o.constructions.Add(ctx, 1, metric.WithAttributes(
		append([]attribute.KeyValue{
			attribute.String(AttrTarget, target),
			attribute.String(AttrOutcome, outcome),
		}, o.attrs...)...,
	))
	o.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
		append([]attribute.KeyValue{attribute.String(AttrTarget, target)}, o.attrs...)...,
	))

	trace.SpanFromContext(ctx).AddEvent("constructed", trace.WithAttributes(
		attribute.String(AttrTarget, target),
		attribute.String(AttrConstructor, constructor),
		attribute.String(AttrOutcome, outcome),
	))
}
