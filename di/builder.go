package di

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

var errNoBuildFunc = errors.New("constructor has no build function")

type pathKey struct{}

// pathFrom returns the chain of keys currently being built on ctx.
func pathFrom(ctx context.Context) []Key {
	p, _ := ctx.Value(pathKey{}).([]Key)
	return p
}

func withKey(ctx context.Context, path []Key, key Key) (context.Context, []Key) {
	next := make([]Key, len(path)+1)
	copy(next, path)
	next[len(path)] = key
	return context.WithValue(ctx, pathKey{}, next), next
}

// Build constructs impl against the current bindings without registering
// it.
func (r *Registry) Build(ctx context.Context, impl Implementation) (any, error) {
	return r.build(ctx, Key{}, impl)
}

// build selects the cheapest resolvable constructor of impl, provides each
// parameter through the table and runs it. key is the binding being built,
// or the zero Key for ad hoc builds.
func (r *Registry) build(ctx context.Context, key Key, impl Implementation) (any, error) {
	if !key.IsZero() {
		var path []Key
		ctx, path = withKey(ctx, pathFrom(ctx), key)
		if len(path) > r.maxDepth {
			return nil, &DepthError{Path: path, Limit: r.maxDepth}
		}
	}

	selected, err := r.Search(impl).Select()
	if err != nil {
		return nil, err
	}
	ctor := selected.Constructor

	args := make([]any, len(ctor.Params))
	for i, p := range ctor.Params {
		v, ok, err := r.Provide(ctx, p)
		if err != nil {
			var depthErr *DepthError
			if errors.As(err, &depthErr) {
				return nil, err
			}
			return nil, fmt.Errorf("di: resolving parameter #%d (%s) of %s: %w", i, p.ShortString(), impl.Name, err)
		}
		if !ok {
			// The binding disappeared between Search and Provide.
			return nil, &ResolutionError{
				Target: impl.Name,
				Blocked: []BlockedConstructor{{
					Index:     selected.Index,
					Signature: ctor.Signature(impl.Name),
					Missing:   []MissingParam{{Position: i, Key: p}},
				}},
			}
		}
		args[i] = v
	}

	return r.invoke(ctx, impl, ctor, args)
}

func (r *Registry) invoke(ctx context.Context, impl Implementation, ctor Constructor, args []any) (instance any, err error) {
	sig := ctor.Signature(impl.Name)
	start := time.Now()
	defer func() { r.observer.Constructed(ctx, impl.Name, sig, time.Since(start), err) }()

	if ctor.Build == nil {
		return nil, &ConstructionError{Target: impl.Name, Constructor: sig, Cause: errNoBuildFunc}
	}

	instance, cause := callBuild(ctor.Build, args)
	if cause != nil {
		return nil, &ConstructionError{Target: impl.Name, Constructor: sig, Cause: cause}
	}
	if isNil(instance) {
		return nil, &NullConstructionError{Target: impl.Name, Constructor: sig}
	}
	return instance, nil
}

// callBuild runs build and turns a panic into an error.
func callBuild(build BuildFunc, args []any) (instance any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = fmt.Errorf("panic: %w", e)
				return
			}
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return build(args)
}

// isNil reports whether v is nil or a typed nil pointer, map, chan, func or
// interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
