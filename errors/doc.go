// Package errors provides the machine-readable error model for the ioc
// module. Container failures (resolution, construction, registration) are
// mapped onto AppError values carrying a stable code, an HTTP status for
// the inspect surface, and structured details.
package errors
