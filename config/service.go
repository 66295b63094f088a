package config

import (
	"github.com/kbukum/ioc/inspect"
	"github.com/kbukum/ioc/logger"
	"github.com/kbukum/ioc/observability"
	"github.com/kbukum/ioc/validation"
)

var validEnvironments = []string{"development", "staging", "production"}

// ServiceConfig contains the configuration every container host needs.
// Projects extend this by embedding it in their own config structs.
//
// Example:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Orders OrdersConfig  `yaml:"orders" mapstructure:"orders"`
//	}
type ServiceConfig struct {
	Name          string               `yaml:"name" mapstructure:"name"`
	Environment   string               `yaml:"environment" mapstructure:"environment"`
	Version       string               `yaml:"version" mapstructure:"version"`
	Debug         bool                 `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Container     ContainerConfig      `yaml:"container" mapstructure:"container"`
	Inspect       inspect.Config       `yaml:"inspect" mapstructure:"inspect"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// GetServiceConfig returns the base ServiceConfig.
// When embedded in a larger config struct, this method is promoted
// so the embedding struct automatically satisfies the Config interface.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to every section.
// Override this in embedding structs and call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	c.Container.ApplyDefaults()
	c.Inspect.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section through its struct tags and reports all
// problems at once.
// Override this in embedding structs and call c.ServiceConfig.Validate() first.
func (c *ServiceConfig) Validate() error {
	v := validation.New()
	v.Required("name", c.Name)
	v.Required("environment", c.Environment)
	v.OneOf("environment", c.Environment, validEnvironments)
	v.Merge("", validation.Validate(c))
	return v.Err()
}
