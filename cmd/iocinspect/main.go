// Command iocinspect hosts a demo container behind the inspect HTTP server.
// It shows the full wiring of config, logging, tracing and the container,
// and is a starting point for a service's own main.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/ioc/config"
	"github.com/kbukum/ioc/di"
	"github.com/kbukum/ioc/inspect"
	"github.com/kbukum/ioc/logger"
	"github.com/kbukum/ioc/observability"
	"github.com/kbukum/ioc/version"
)

const (
	serviceName     = "iocinspect"
	gracefulTimeout = 10 * time.Second
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg config.ServiceConfig
	cfg.Name = serviceName
	if err := config.Load(serviceName, &cfg, config.WithEnvPrefix("IOC")); err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)
	log.Info("Starting", logger.Fields(
		"version", version.GetFullVersion(),
		"environment", cfg.Environment,
	))

	var stops shutdownList
	return serve(ctx, &cfg, log, wire, &stops)
}

// serve starts everything cfg enables, waits for a signal or ctx, then
// stops in reverse start order. Whatever started before a failure is still
// stopped.
func serve(ctx context.Context, cfg *config.ServiceConfig, log *logger.Logger,
	wireFn func(context.Context, di.Container) error, stops *shutdownList) error {
	defer stops.run(log)

	opts := cfg.Container.ToOptions(log)

	if cfg.Observability.Enabled {
		providers, err := observability.Setup(ctx, cfg.Observability, cfg.Name, version.GetShortVersion(), cfg.Environment)
		if err != nil {
			return err
		}
		stops.add("telemetry", providers.Shutdown)

		obs, err := providers.Observer(attribute.String(observability.AttrService, cfg.Name))
		if err != nil {
			return err
		}
		opts = append(opts, di.WithObserver(obs))
	}

	c := di.NewContainer(opts...)
	stops.add("container", func(context.Context) error { return c.Close() })
	if err := wireFn(ctx, c); err != nil {
		return fmt.Errorf("wiring container: %w", err)
	}

	if cfg.Inspect.Enabled {
		srv := inspect.New(cfg.Inspect, cfg.Name, c, log)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		stops.add("inspect server", srv.Stop)
	}

	waitForSignal(ctx, log)
	return nil
}

func waitForSignal(ctx context.Context, log *logger.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", logger.Fields("signal", sig.String()))
	case <-ctx.Done():
	}
}
