package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/kbukum/ioc/logger"
)

// MeterConfig configures the meter provider that carries DIObserver's
// instruments.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string
	Insecure bool
	// Interval between pushes; zero keeps the SDK default.
	Interval time.Duration
}

// constructionBuckets bound di.construction.duration in seconds. Most
// constructors finish in microseconds, the upper buckets catch those that
// open connections.
var constructionBuckets = []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1, 10}

// InitMeter starts a meter provider that pushes to the OTLP endpoint and
// installs it globally. The caller shuts it down on exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	exporterOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}
	mp := newMeterProvider(sdkmetric.NewPeriodicReader(exporter, readerOpts...), res)
	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("Meter provider started", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// newMeterProvider wires reader to a provider whose construction histogram
// uses constructionBuckets instead of the SDK's millisecond-scale defaults.
func newMeterProvider(reader sdkmetric.Reader, res *resource.Resource) *sdkmetric.MeterProvider {
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
		sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: MetricConstructionTime},
			sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
				Boundaries: constructionBuckets,
			}},
		)),
	)
}
