package testutil

import (
	"context"

	"github.com/kbukum/ioc/di"
)

// Fixture installs a group of bindings into a container. Fixtures let tests
// share wiring without sharing a container.
type Fixture interface {
	// Name identifies the fixture in failure messages.
	Name() string

	// Install registers the fixture's bindings. It may be called again on
	// the same container after a Reset.
	Install(ctx context.Context, c di.Container) error
}

// FixtureFunc adapts a function to the Fixture interface.
type FixtureFunc struct {
	FixtureName string
	Fn          func(ctx context.Context, c di.Container) error
}

// Name returns the fixture name.
func (f FixtureFunc) Name() string { return f.FixtureName }

// Install calls Fn.
func (f FixtureFunc) Install(ctx context.Context, c di.Container) error {
	return f.Fn(ctx, c)
}

// Values returns a fixture that registers a pre-built instance for each key.
func Values(name string, values map[di.Key]any) Fixture {
	return FixtureFunc{
		FixtureName: name,
		Fn: func(_ context.Context, c di.Container) error {
			for key, v := range values {
				if err := c.RegisterInstance(key, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
