package di

import (
	"context"
	"time"
)

// Observer receives resolution and construction events. Implementations
// must be cheap; they run inline on the resolving goroutine.
type Observer interface {
	// ResolveStart is called before a key is provided. The returned context
	// is passed to nested resolutions and to ResolveEnd.
	ResolveStart(ctx context.Context, key Key) context.Context
	// ResolveEnd is called after a key was provided. found is false for
	// keys with no binding.
	ResolveEnd(ctx context.Context, key Key, found bool, err error)
	// Constructed is called after a constructor ran, successfully or not.
	Constructed(ctx context.Context, target, constructor string, d time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ResolveStart(ctx context.Context, _ Key) context.Context { return ctx }
func (nopObserver) ResolveEnd(context.Context, Key, bool, error)            {}
func (nopObserver) Constructed(context.Context, string, string, time.Duration, error) {
}
