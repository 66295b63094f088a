package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kbukum/ioc/di"
	"github.com/kbukum/ioc/logger"
)

// NewContainer returns a container that logs nowhere and is reset when the
// test ends. opts are applied after the silent logger, so a test can still
// pass its own.
//
// Example:
//
//	func TestCheckout(t *testing.T) {
//	    c := testutil.NewContainer(t)
//	    testutil.T(t).Install(c, paymentFixture)
//	    svc := testutil.RequireResolve[CheckoutService](t, c)
//	    ...
//	}
func NewContainer(t testing.TB, opts ...di.Option) *di.DefaultContainer {
	t.Helper()
	c := di.NewContainer(append([]di.Option{di.WithLogger(logger.Nop())}, opts...)...)
	t.Cleanup(c.Reset)
	return c
}

// RequireResolve resolves T or fails the test.
func RequireResolve[T any](t testing.TB, c di.Container) T {
	t.Helper()
	v, err := di.Resolve[T](context.Background(), c)
	require.NoError(t, err, "resolve %s", di.KeyOf[T]().ShortString())
	return v
}

// RequireResolutionError asserts that err is, or wraps, a ResolutionError
// and that its blocked constructors are missing exactly the given keys.
func RequireResolutionError(t testing.TB, err error, missing ...di.Key) *di.ResolutionError {
	t.Helper()
	var resErr *di.ResolutionError
	require.True(t, errors.As(err, &resErr), "expected a resolution error, got %v", err)
	if len(missing) > 0 {
		require.ElementsMatch(t, missing, resErr.MissingKeys())
	}
	return resErr
}

// THelper binds a testing.TB and a context for fixture handling.
type THelper struct {
	t   testing.TB
	ctx context.Context
}

// T wraps t to provide helper methods.
func T(t testing.TB) *THelper {
	return &THelper{
		t:   t,
		ctx: context.Background(),
	}
}

// WithContext sets the context passed to fixtures.
func (h *THelper) WithContext(ctx context.Context) *THelper {
	h.ctx = ctx
	return h
}

// Install installs each fixture into c, failing the test on the first error.
func (h *THelper) Install(c di.Container, fixtures ...Fixture) {
	h.t.Helper()
	for _, f := range fixtures {
		if err := f.Install(h.ctx, c); err != nil {
			h.t.Fatalf("failed to install fixture %s: %v", f.Name(), err)
		}
	}
}

// Register binds key to impl with lc, failing the test on error.
func (h *THelper) Register(c di.Container, key di.Key, impl di.Implementation, lc di.Lifecycle) {
	h.t.Helper()
	if err := c.RegisterLifecycle(h.ctx, key, impl, lc); err != nil {
		h.t.Fatalf("failed to register %s: %v", key.ShortString(), err)
	}
}
