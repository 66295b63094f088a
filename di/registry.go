package di

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrZeroKey is returned when a binding is registered under the zero Key.
	ErrZeroKey = errors.New("di: zero key")
	// ErrNilInstance is returned when a nil value is registered as a singleton.
	ErrNilInstance = errors.New("di: nil instance")
)

// RegistrationInfo describes one binding for introspection.
type RegistrationInfo struct {
	Key       Key
	Lifecycle Lifecycle
	// Implementation is empty for values registered with RegisterSingletonValue.
	Implementation string
	// Materialized is true when the table holds a built instance.
	Materialized bool
}

// Registry is the binding table. Every key lives in exactly one of two
// stores: singletons hold a built instance, scoped hold an implementation
// that is built on each Provide. Writing a key to one store removes it from
// the other.
//
// The mutex only guards map access and is never held while constructing, so
// constructors resolve their parameters through the same table. Callers that
// mutate and resolve concurrently still need their own ordering if they
// require a consistent view of the whole graph.
type Registry struct {
	mu         sync.RWMutex
	singletons map[Key]any
	scoped     map[Key]Implementation
	// origins remembers which implementation produced a singleton.
	origins map[Key]Implementation

	maxDepth    int
	scopedProbe bool
	observer    Observer
}

// NewRegistry creates an empty binding table. Only the resolution options
// (WithMaxDepth, WithObserver, WithScopedProbe) apply to a bare Registry.
func NewRegistry(opts ...Option) *Registry {
	return newRegistry(resolveOptions(opts))
}

func newRegistry(o *options) *Registry {
	return &Registry{
		singletons:  make(map[Key]any),
		scoped:      make(map[Key]Implementation),
		origins:     make(map[Key]Implementation),
		maxDepth:    o.maxDepth,
		scopedProbe: o.scopedProbe,
		observer:    o.observer,
	}
}

// Register installs impl under key with the given lifecycle.
func (r *Registry) Register(ctx context.Context, key Key, impl Implementation, lc Lifecycle) error {
	switch lc {
	case Singleton:
		return r.RegisterSingletonType(ctx, key, impl)
	case Scoped:
		return r.RegisterScopedType(ctx, key, impl)
	default:
		return fmt.Errorf("di: unsupported lifecycle %s", lc)
	}
}

// RegisterSingletonValue stores instance under key. Nothing is constructed.
func (r *Registry) RegisterSingletonValue(key Key, instance any) error {
	if key.IsZero() {
		return ErrZeroKey
	}
	if isNil(instance) {
		return ErrNilInstance
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scoped, key)
	delete(r.origins, key)
	r.singletons[key] = instance
	return nil
}

// RegisterSingletonType builds one instance of impl now and stores it under
// key. When construction fails the table is left untouched.
func (r *Registry) RegisterSingletonType(ctx context.Context, key Key, impl Implementation) error {
	if key.IsZero() {
		return ErrZeroKey
	}
	if err := impl.checkAssignable(key); err != nil {
		return err
	}

	instance, err := r.build(ctx, key, impl)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scoped, key)
	r.singletons[key] = instance
	r.origins[key] = impl
	return nil
}

// RegisterScopedType stores impl under key; every Provide builds a new
// instance. With the scoped probe enabled one instance is built and
// discarded right away so wiring mistakes surface at registration. The
// binding stays installed even if the probe fails, since its dependencies
// may be registered later.
func (r *Registry) RegisterScopedType(ctx context.Context, key Key, impl Implementation) error {
	if key.IsZero() {
		return ErrZeroKey
	}
	if err := impl.checkAssignable(key); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.singletons, key)
	delete(r.origins, key)
	r.scoped[key] = impl
	r.mu.Unlock()

	if r.scopedProbe {
		if _, err := r.build(ctx, key, impl); err != nil {
			return err
		}
	}
	return nil
}

// Provides reports whether key is bound in either store.
func (r *Registry) Provides(key Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.singletons[key]; ok {
		return true
	}
	_, ok := r.scoped[key]
	return ok
}

// Provide returns the instance for key. Singletons are checked first, then
// scoped bindings are built. An unbound key yields (nil, false, nil).
func (r *Registry) Provide(ctx context.Context, key Key) (instance any, found bool, err error) {
	ctx = r.observer.ResolveStart(ctx, key)
	defer func() { r.observer.ResolveEnd(ctx, key, found, err) }()

	r.mu.RLock()
	single, isSingleton := r.singletons[key]
	impl, isScoped := r.scoped[key]
	r.mu.RUnlock()

	switch {
	case isSingleton:
		return single, true, nil
	case isScoped:
		instance, err = r.build(ctx, key, impl)
		return instance, true, err
	default:
		return nil, false, nil
	}
}

// Implementation returns the implementation bound to key, if any. Values
// registered directly have none.
func (r *Registry) Implementation(key Key) (Implementation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if impl, ok := r.scoped[key]; ok {
		return impl, true
	}
	impl, ok := r.origins[key]
	return impl, ok
}

// Clear empties both stores. Held instances are dropped without being
// closed.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.singletons = make(map[Key]any)
	r.scoped = make(map[Key]Implementation)
	r.origins = make(map[Key]Implementation)
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.singletons) + len(r.scoped)
}

// Registrations returns every binding, sorted by key name.
func (r *Registry) Registrations() []RegistrationInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]RegistrationInfo, 0, len(r.singletons)+len(r.scoped))
	for key := range r.singletons {
		info := RegistrationInfo{Key: key, Lifecycle: Singleton, Materialized: true}
		if impl, ok := r.origins[key]; ok {
			info.Implementation = impl.Name
		}
		result = append(result, info)
	}
	for key, impl := range r.scoped {
		result = append(result, RegistrationInfo{
			Key:            key,
			Lifecycle:      Scoped,
			Implementation: impl.Name,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key.String() < result[j].Key.String()
	})
	return result
}

// singletonValues returns the held singleton instances.
func (r *Registry) singletonValues() []any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]any, 0, len(r.singletons))
	for _, v := range r.singletons {
		out = append(out, v)
	}
	return out
}
