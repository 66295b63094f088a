package di

import (
	"github.com/kbukum/ioc/logger"
)

// DefaultMaxDepth bounds nested resolution. Graphs deeper than this are
// almost always cycles.
const DefaultMaxDepth = 64

type options struct {
	logger      *logger.Logger
	observer    Observer
	maxDepth    int
	scopedProbe bool
	swallow     bool
}

// Option configures a container or registry.
type Option func(*options)

// WithLogger sets the logger used for registration and resolution events.
// The default is logger.Get("di").
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the observer notified of resolutions and constructions.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithMaxDepth bounds the resolution chain length. Values below 1 are
// ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithScopedProbe makes scoped registration build and discard one instance
// so broken wiring is reported immediately.
func WithScopedProbe(enabled bool) Option {
	return func(o *options) { o.scopedProbe = enabled }
}

// WithSwallowRegistrationErrors makes registration log failures and return
// nil instead of returning a RegistrationError. Callers then detect a
// failed singleton only by the key being unbound.
func WithSwallowRegistrationErrors(enabled bool) Option {
	return func(o *options) { o.swallow = enabled }
}

func resolveOptions(opts []Option) *options {
	o := &options{
		observer: nopObserver{},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.Get("di")
	}
	return o
}
