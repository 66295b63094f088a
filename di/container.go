package di

import (
	"context"
	"errors"
	"io"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/ioc/logger"
)

// Container is the resolution surface handed to application code.
type Container interface {
	// Register binds key to impl with the Scoped lifecycle.
	Register(ctx context.Context, key Key, impl Implementation) error
	// RegisterLifecycle binds key to impl with an explicit lifecycle.
	// Singletons are built before it returns.
	RegisterLifecycle(ctx context.Context, key Key, impl Implementation, lc Lifecycle) error
	// RegisterInstance binds key to a pre-built singleton value.
	RegisterInstance(key Key, instance any) error
	// Resolve returns the instance for key. An unbound key gives
	// (nil, false, nil); a bound key that cannot be built gives an error.
	Resolve(ctx context.Context, key Key) (any, bool, error)
	Provides(key Key) bool
	// Diagnose runs the constructor search for key's implementation
	// without building anything.
	Diagnose(key Key) (SearchResult, bool)
	Registrations() []RegistrationInfo
	// Reset drops every binding. Held instances are not closed.
	Reset()
	// Close closes held singletons that implement io.Closer, then resets.
	Close() error
	ID() string
}

// DefaultContainer is the Container backed by a Registry.
type DefaultContainer struct {
	id       string
	registry *Registry
	log      *logger.Logger
	swallow  bool
}

var _ Container = (*DefaultContainer)(nil)

// NewContainer creates an empty container.
func NewContainer(opts ...Option) *DefaultContainer {
	o := resolveOptions(opts)
	id := uuid.NewString()
	return &DefaultContainer{
		id:       id,
		registry: newRegistry(o),
		log:      o.logger.WithFields(logger.Fields(logger.FieldContainerID, id)),
		swallow:  o.swallow,
	}
}

// ID returns the container's unique id, also attached to its log lines.
func (c *DefaultContainer) ID() string {
	return c.id
}

// Registry exposes the underlying binding table.
func (c *DefaultContainer) Registry() *Registry {
	return c.registry
}

// Register binds key to impl with the Scoped lifecycle.
func (c *DefaultContainer) Register(ctx context.Context, key Key, impl Implementation) error {
	return c.RegisterLifecycle(ctx, key, impl, Scoped)
}

// RegisterLifecycle binds key to impl with the given lifecycle.
func (c *DefaultContainer) RegisterLifecycle(ctx context.Context, key Key, impl Implementation, lc Lifecycle) error {
	start := time.Now()
	if err := c.registry.Register(ctx, key, impl, lc); err != nil {
		return c.registrationFailed(key, lc, err)
	}

	c.log.Debug("Binding registered", logger.MergeWithDuration(logger.Fields(
		logger.FieldKey, key.String(),
		logger.FieldLifecycle, lc.String(),
		logger.FieldTarget, impl.Name,
	), time.Since(start)))
	return nil
}

// RegisterInstance binds key to instance as a singleton.
func (c *DefaultContainer) RegisterInstance(key Key, instance any) error {
	if err := c.registry.RegisterSingletonValue(key, instance); err != nil {
		return c.registrationFailed(key, Singleton, err)
	}

	c.log.Debug("Instance registered", logger.Fields(
		logger.FieldKey, key.String(),
		logger.FieldLifecycle, Singleton.String(),
	))
	return nil
}

func (c *DefaultContainer) registrationFailed(key Key, lc Lifecycle, err error) error {
	fields := logger.Fields(
		logger.FieldKey, key.String(),
		logger.FieldLifecycle, lc.String(),
		logger.FieldError, err.Error(),
	)
	if c.swallow {
		c.log.Warn("Registration failed, error discarded", fields)
		return nil
	}
	c.log.Error("Registration failed", fields)
	return &RegistrationError{Key: key, Lifecycle: lc, Cause: err}
}

// Resolve returns the instance bound to key.
func (c *DefaultContainer) Resolve(ctx context.Context, key Key) (any, bool, error) {
	instance, found, err := c.registry.Provide(ctx, key)
	if err != nil {
		c.log.WithContext(ctx).Debug("Resolution failed", logger.Fields(
			logger.FieldKey, key.String(),
			logger.FieldError, err.Error(),
		))
	}
	return instance, found, err
}

// Provides reports whether key is bound.
func (c *DefaultContainer) Provides(key Key) bool {
	return c.registry.Provides(key)
}

// Diagnose classifies the constructors of key's implementation against the
// current bindings. It returns false when key is unbound or bound to a
// plain value.
func (c *DefaultContainer) Diagnose(key Key) (SearchResult, bool) {
	impl, ok := c.registry.Implementation(key)
	if !ok {
		return SearchResult{}, false
	}
	return c.registry.Search(impl), true
}

// Registrations lists every binding sorted by key.
func (c *DefaultContainer) Registrations() []RegistrationInfo {
	return c.registry.Registrations()
}

// Reset drops every binding.
func (c *DefaultContainer) Reset() {
	n := c.registry.Len()
	c.registry.Clear()
	c.log.Info("Container reset", logger.Fields("bindings", n))
}

// Close closes every held singleton implementing io.Closer and resets the
// container. An instance bound under several keys is closed once. All close
// errors are returned joined.
func (c *DefaultContainer) Close() error {
	var errs []error
	seen := make(map[any]bool)
	for _, v := range c.registry.singletonValues() {
		closer, ok := v.(io.Closer)
		if !ok {
			continue
		}
		if reflect.ValueOf(v).Comparable() {
			if seen[v] {
				continue
			}
			seen[v] = true
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.Reset()
	return errors.Join(errs...)
}
