package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Container Error Constructors ---

// NotRegistered creates a new AppError for a key with no binding.
func NotRegistered(key string) *AppError {
	return &AppError{
		Code: ErrCodeNotRegistered, Message: fmt.Sprintf("No binding is registered for %s.", key),
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"key": key},
	}
}

// ResolutionFailed creates a new AppError for a target none of whose
// constructors can be satisfied. blocked maps a constructor signature to the
// names of its unresolved parameter types.
func ResolutionFailed(target string, blocked map[string][]string) *AppError {
	return &AppError{
		Code: ErrCodeResolutionFailed, Message: fmt.Sprintf("No constructor of %s can be satisfied by the current bindings.", target),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"target": target, "blocked": blocked},
	}
}

// ConstructionFailed creates a new AppError for a constructor that failed while running.
func ConstructionFailed(target, constructor string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConstructionFailed, Message: fmt.Sprintf("Constructor %s failed to build %s.", constructor, target),
		HTTPStatus: http.StatusInternalServerError, Retryable: true,
		Details: map[string]any{"target": target, "constructor": constructor}, Cause: cause,
	}
}

// NullConstruction creates a new AppError for a constructor that returned no instance.
func NullConstruction(target, constructor string) *AppError {
	return &AppError{
		Code: ErrCodeNullConstruction, Message: fmt.Sprintf("Constructor %s returned no instance of %s.", constructor, target),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"target": target, "constructor": constructor},
	}
}

// DepthExceeded creates a new AppError for a resolution chain nested beyond the limit.
func DepthExceeded(path []string, limit int) *AppError {
	return &AppError{
		Code: ErrCodeDepthExceeded, Message: fmt.Sprintf("Resolution exceeded the depth limit of %d: %s", limit, strings.Join(path, " -> ")),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"path": path, "limit": limit},
	}
}

// RegistrationFailed creates a new AppError for a binding that could not be installed.
func RegistrationFailed(key, lifecycle string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeRegistrationFailed, Message: fmt.Sprintf("Registering %s as %s failed.", key, lifecycle),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"key": key, "lifecycle": lifecycle}, Cause: cause,
	}
}

// AmbiguousKey creates a new AppError for a short type name shared by
// bindings from different packages. candidates are the qualified names.
func AmbiguousKey(name string, candidates []string) *AppError {
	return &AppError{
		Code: ErrCodeAmbiguousKey, Message: fmt.Sprintf("%s matches %d bindings; use a package-qualified key.", name, len(candidates)),
		HTTPStatus: http.StatusConflict, Retryable: false,
		Details: map[string]any{"key": name, "candidates": candidates},
	}
}

// --- Common Error Constructors ---

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
