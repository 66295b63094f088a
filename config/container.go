package config

import (
	"github.com/kbukum/ioc/di"
	"github.com/kbukum/ioc/logger"
)

// ContainerConfig carries the container knobs that can be set from
// config.yml or the environment.
type ContainerConfig struct {
	// ScopedProbe builds and discards one instance when a scoped binding is
	// registered, so wiring mistakes surface immediately.
	ScopedProbe bool `yaml:"scoped_probe" mapstructure:"scoped_probe"`
	// SwallowRegistrationErrors logs failed registrations and returns nil.
	SwallowRegistrationErrors bool `yaml:"swallow_registration_errors" mapstructure:"swallow_registration_errors"`
	// MaxDepth bounds nested resolution; deeper chains fail with a DepthError.
	MaxDepth int `yaml:"max_depth" mapstructure:"max_depth" validate:"gte=1,lte=4096"`
}

// ApplyDefaults sets MaxDepth when unset.
func (c *ContainerConfig) ApplyDefaults() {
	if c.MaxDepth == 0 {
		c.MaxDepth = di.DefaultMaxDepth
	}
}

// ToOptions converts the section into container options. log may be nil,
// in which case the container's default logger is used.
func (c *ContainerConfig) ToOptions(log *logger.Logger) []di.Option {
	opts := []di.Option{
		di.WithMaxDepth(c.MaxDepth),
		di.WithScopedProbe(c.ScopedProbe),
		di.WithSwallowRegistrationErrors(c.SwallowRegistrationErrors),
	}
	if log != nil {
		opts = append(opts, di.WithLogger(log.WithComponent("di")))
	}
	return opts
}
