package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Container errors
const (
	// ErrCodeNotRegistered indicates no binding exists for the requested key.
	ErrCodeNotRegistered ErrorCode = "NOT_REGISTERED"
	// ErrCodeResolutionFailed indicates no constructor of the target had all
	// of its parameters bound.
	ErrCodeResolutionFailed ErrorCode = "RESOLUTION_FAILED"
	// ErrCodeConstructionFailed indicates a selected constructor failed while running.
	ErrCodeConstructionFailed ErrorCode = "CONSTRUCTION_FAILED"
	// ErrCodeNullConstruction indicates a constructor produced no instance.
	ErrCodeNullConstruction ErrorCode = "NULL_CONSTRUCTION"
	// ErrCodeDepthExceeded indicates the dependency graph nested deeper than allowed.
	ErrCodeDepthExceeded ErrorCode = "DEPTH_EXCEEDED"
	// ErrCodeRegistrationFailed indicates a binding could not be installed.
	ErrCodeRegistrationFailed ErrorCode = "REGISTRATION_FAILED"
	// ErrCodeAmbiguousKey indicates a short type name matches several bindings.
	ErrCodeAmbiguousKey ErrorCode = "AMBIGUOUS_KEY"
)

// Request errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Construction may succeed on a later attempt once the underlying fault
// clears; graph-shape failures never do until the bindings change.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeConstructionFailed: true,
	ErrCodeResolutionFailed:   false,
	ErrCodeDepthExceeded:      false,
	ErrCodeInternal:           false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
