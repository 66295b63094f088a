// Package validation provides struct tag validation and programmatic error
// collection for configuration and request input.
//
// # Struct Tag Validation
//
//	type ContainerConfig struct {
//	    MaxDepth int `mapstructure:"max_depth" validate:"gte=1,lte=4096"`
//	}
//	err := validation.Validate(cfg)
//
// Field names in errors follow the mapstructure tag, falling back to yaml,
// json and finally the snake_cased Go name.
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", cfg.Name)
//	v.OneOf("environment", cfg.Environment, envs)
//	err := v.Err()
package validation
