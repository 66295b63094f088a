// Package observability provides OpenTelemetry tracing and metrics for the
// container.
//
// Setup:
//
//	providers, err := observability.Setup(ctx, cfg.Observability, "orders", version.GetShortVersion(), "production")
//	defer providers.Shutdown(ctx)
//
//	obs, err := providers.Observer()
//	c := di.NewContainer(di.WithObserver(obs))
//
// The observer opens a di.resolve span for every key the container
// provides and records these instruments:
//
//	di.constructions.total    counter, by target and outcome
//	di.construction.duration  histogram in seconds, by target
//	di.resolution.errors      counter, by key and error code
//
// Health Checks:
//
//	health := observability.NewServiceHealth("orders", "1.0.0")
//	health.AddComponent(observability.CheckContainer(c))
package observability
