// Package inspect serves a read-only HTTP view of a container.
//
//	GET /healthz                   service and container health
//	GET /version                   build metadata
//	GET /metrics                   Prometheus metrics for the server and the binding table
//	GET /bindings                  every binding, sorted by key
//	GET /bindings/:key/diagnose    constructor search for one binding
//	GET /bindings/:key/resolve     build the binding (AllowResolve only)
//
// :key is either the short type name ("store.Repository") or the
// package-qualified name with slashes escaped
// ("github.com%2Facme%2Fstore.Repository"). A short name shared by
// bindings from different packages answers 409 AMBIGUOUS_KEY with the
// qualified candidates.
//
// Errors are rendered as errors.ErrorResponse with the status carried by
// the AppError, so a failed resolve answers 422 with RESOLUTION_FAILED and
// the blocked constructors in details.
package inspect
