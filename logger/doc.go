// Package logger provides structured logging for ioc services using
// zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
// The container logs registration outcomes and resolution failures through
// a component logger obtained from Get("di").
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("di")
//	log.Info("binding registered", logger.Fields("key", key.String()))
package logger
