package di

import (
	"context"
	"fmt"
)

// RegisterType binds I to impl with the given lifecycle.
//
//	err := di.RegisterType[Repository](ctx, c, di.Implement[*pgRepo](di.Ctor1(newPgRepo)), di.Singleton)
func RegisterType[I any](ctx context.Context, c Container, impl Implementation, lc Lifecycle) error {
	return c.RegisterLifecycle(ctx, KeyOf[I](), impl, lc)
}

// RegisterValue binds I to a pre-built instance.
func RegisterValue[I any](c Container, instance I) error {
	return c.RegisterInstance(KeyOf[I](), instance)
}

// Resolve resolves T with type safety, returns error on failure. An unbound
// T is reported as ErrNotRegistered.
//
// Example:
//
//	repo, err := di.Resolve[Repository](ctx, c)
//	if err != nil {
//	    return fmt.Errorf("failed to get repository: %w", err)
//	}
func Resolve[T any](ctx context.Context, c Container) (T, error) {
	var zero T
	key := KeyOf[T]()
	instance, found, err := c.Resolve(ctx, key)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, fmt.Errorf("%w: %s", ErrNotRegistered, key.ShortString())
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: component %s is %T, expected %s", key.ShortString(), instance, key.ShortString())
	}
	return result, nil
}

// MustResolve resolves T, panics on error. Use it in wiring code where a
// missing dependency is a programming error.
func MustResolve[T any](ctx context.Context, c Container) T {
	result, err := Resolve[T](ctx, c)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", KeyOf[T]().ShortString(), err))
	}
	return result
}

// TryResolve resolves T, returns zero value and false if it is unbound or
// cannot be built. Use this when a dependency is optional.
//
// Example:
//
//	if metrics, ok := di.TryResolve[MetricsClient](ctx, c); ok {
//	    metrics.RecordEvent(...)
//	}
func TryResolve[T any](ctx context.Context, c Container) (T, bool) {
	result, err := Resolve[T](ctx, c)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
