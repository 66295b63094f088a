// Package config loads service configuration with Viper from config.yml,
// an optional .env file and the environment.
//
// # Usage
//
//	var cfg config.ServiceConfig
//	err := config.Load("iocinspect", &cfg, config.WithEnvPrefix("IOC"))
//
// config.yml is searched under ./cmd/<service>/, ./config/ and the working
// directory. Environment variables override file values using
// underscore-separated paths: with prefix IOC, IOC_CONTAINER_MAX_DEPTH sets
// container.max_depth.
//
// The container section converts straight into container options:
//
//	c := di.NewContainer(cfg.Container.ToOptions(log)...)
package config
