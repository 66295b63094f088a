package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotRegistered, "missing", http.StatusNotFound)
	if err.Code != ErrCodeNotRegistered {
		t.Errorf("expected code %s, got %s", ErrCodeNotRegistered, err.Code)
	}
	if err.Message != "missing" {
		t.Errorf("expected message 'missing', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("NOT_REGISTERED should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeConstructionFailed, "boom", http.StatusInternalServerError)
	if !err.Retryable {
		t.Error("CONSTRUCTION_FAILED should be retryable")
	}
}

func TestAppError_ResolutionFailed_Details(t *testing.T) {
	blocked := map[string][]string{
		"app.Service(app.Repo)": {"app.Repo"},
	}
	err := ResolutionFailed("app.Service", blocked)
	if err.Code != ErrCodeResolutionFailed {
		t.Errorf("expected RESOLUTION_FAILED, got %s", err.Code)
	}
	if err.Details["target"] != "app.Service" {
		t.Errorf("expected target=app.Service, got %v", err.Details["target"])
	}
	got, ok := err.Details["blocked"].(map[string][]string)
	if !ok || len(got["app.Service(app.Repo)"]) != 1 {
		t.Errorf("expected blocked constructor details, got %v", err.Details["blocked"])
	}
	if !strings.Contains(err.Message, "app.Service") {
		t.Errorf("expected message to name target, got %q", err.Message)
	}
}

func TestAppError_DepthExceeded_Path(t *testing.T) {
	err := DepthExceeded([]string{"a.A", "a.B", "a.A"}, 2)
	if !strings.Contains(err.Message, "a.A -> a.B -> a.A") {
		t.Errorf("expected path in message, got %q", err.Message)
	}
	if err.Details["limit"] != 2 {
		t.Errorf("expected limit=2, got %v", err.Details["limit"])
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NotFound("binding", "x").WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := NotFound("item", "1").WithDetails(map[string]any{
		"extra": "info",
	})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["resource"] != "item" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized")
	}
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Unwrap_Success(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := ConstructionFailed("a.A", "a.A()", cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}

	err2 := NotFound("x", "")
	if err2.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"NotRegistered", NotRegistered("a.A"), ErrCodeNotRegistered, http.StatusNotFound, false},
		{"ResolutionFailed", ResolutionFailed("a.A", nil), ErrCodeResolutionFailed, http.StatusUnprocessableEntity, false},
		{"ConstructionFailed", ConstructionFailed("a.A", "a.A()", nil), ErrCodeConstructionFailed, http.StatusInternalServerError, true},
		{"NullConstruction", NullConstruction("a.A", "a.A()"), ErrCodeNullConstruction, http.StatusInternalServerError, false},
		{"DepthExceeded", DepthExceeded(nil, 1), ErrCodeDepthExceeded, http.StatusUnprocessableEntity, false},
		{"RegistrationFailed", RegistrationFailed("a.A", "singleton", nil), ErrCodeRegistrationFailed, http.StatusUnprocessableEntity, false},
		{"AmbiguousKey", AmbiguousKey("a.A", []string{"x/a.A", "y/a.A"}), ErrCodeAmbiguousKey, http.StatusConflict, false},
		{"MissingField", MissingField("name"), ErrCodeMissingField, http.StatusBadRequest, false},
		{"InvalidInput", InvalidInput("key", "empty"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"Validation", Validation("bad input"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v, got %v", tc.retryable, tc.err.Retryable)
			}
		})
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	err := NotRegistered("a.A")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeNotRegistered {
		t.Errorf("expected code NOT_REGISTERED in response, got %s", resp.Error.Code)
	}
	if resp.Error.Details["key"] != "a.A" {
		t.Error("expected key=a.A in response details")
	}
}

func TestAppError_IsAppError_Success(t *testing.T) {
	appErr := NotFound("x", "")
	if !IsAppError(appErr) {
		t.Error("expected IsAppError to return true for AppError")
	}

	wrapped := fmt.Errorf("wrapped: %w", appErr)
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to return true for wrapped AppError")
	}

	if IsAppError(fmt.Errorf("plain error")) {
		t.Error("expected IsAppError to return false for plain error")
	}
}

type codedErr struct{}

func (codedErr) Error() string        { return "coded" }
func (codedErr) AppError() *AppError { return NullConstruction("a.A", "a.A()") }

func TestFrom(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		if From(nil) != nil {
			t.Error("From(nil) should return nil")
		}
	})

	t.Run("coder in chain", func(t *testing.T) {
		got := From(fmt.Errorf("outer: %w", codedErr{}))
		if got.Code != ErrCodeNullConstruction {
			t.Errorf("expected NULL_CONSTRUCTION, got %s", got.Code)
		}
	})

	t.Run("app error passthrough", func(t *testing.T) {
		orig := NotRegistered("a.A")
		if From(orig) != orig {
			t.Error("From should return the original AppError")
		}
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		plain := fmt.Errorf("something broke")
		got := From(plain)
		if got.Code != ErrCodeInternal {
			t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
		}
		if got.Cause != plain {
			t.Error("expected cause to be the original error")
		}
	})
}
