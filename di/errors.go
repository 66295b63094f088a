package di

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/kbukum/ioc/errors"
)

// ErrNotRegistered is returned by the typed helpers when no binding exists.
// Container.Resolve reports the same condition as ok=false instead.
var ErrNotRegistered = errors.New("di: not registered")

// MissingParam is one constructor parameter whose key has no binding.
type MissingParam struct {
	Position int
	Key      Key
}

func (p MissingParam) String() string {
	return fmt.Sprintf("#%d %s", p.Position, p.Key.ShortString())
}

// BlockedConstructor is a constructor that cannot run against the current
// bindings, together with every parameter that blocks it.
type BlockedConstructor struct {
	Index     int
	Signature string
	Missing   []MissingParam
}

// ResolutionError reports that no constructor of Target is resolvable.
type ResolutionError struct {
	Target  string
	Blocked []BlockedConstructor
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "di: no resolvable constructor for %s", e.Target)
	if len(e.Blocked) == 0 {
		b.WriteString(": no constructors declared")
		return b.String()
	}
	b.WriteString("\nblocked constructors:")
	for _, bc := range e.Blocked {
		missing := make([]string, len(bc.Missing))
		for i, m := range bc.Missing {
			missing[i] = m.String()
		}
		fmt.Fprintf(&b, "\n  -> %s [unresolved parameters: %s]", bc.Signature, strings.Join(missing, ", "))
	}
	return b.String()
}

// AppError maps the error onto the RESOLUTION_FAILED code.
func (e *ResolutionError) AppError() *apperrors.AppError {
	blocked := make(map[string][]string, len(e.Blocked))
	for _, bc := range e.Blocked {
		names := make([]string, len(bc.Missing))
		for i, m := range bc.Missing {
			names[i] = m.Key.String()
		}
		blocked[bc.Signature] = names
	}
	return apperrors.ResolutionFailed(e.Target, blocked).WithCause(e)
}

// MissingKeys returns every distinct unresolved key across all blocked
// constructors, in first-seen order.
func (e *ResolutionError) MissingKeys() []Key {
	seen := make(map[Key]bool)
	var out []Key
	for _, bc := range e.Blocked {
		for _, m := range bc.Missing {
			if !seen[m.Key] {
				seen[m.Key] = true
				out = append(out, m.Key)
			}
		}
	}
	return out
}

// ConstructionError reports that the selected constructor ran and failed,
// either by returning an error or by panicking.
type ConstructionError struct {
	Target      string
	Constructor string
	Cause       error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("di: constructing %s via %s: %v", e.Target, e.Constructor, e.Cause)
}

func (e *ConstructionError) Unwrap() error { return e.Cause }

// AppError maps the error onto the CONSTRUCTION_FAILED code.
func (e *ConstructionError) AppError() *apperrors.AppError {
	return apperrors.ConstructionFailed(e.Target, e.Constructor, e.Cause)
}

// NullConstructionError reports that a constructor returned a nil instance.
type NullConstructionError struct {
	Target      string
	Constructor string
}

func (e *NullConstructionError) Error() string {
	return fmt.Sprintf("di: %s returned nil for %s", e.Constructor, e.Target)
}

// AppError maps the error onto the NULL_CONSTRUCTION code.
func (e *NullConstructionError) AppError() *apperrors.AppError {
	return apperrors.NullConstruction(e.Target, e.Constructor)
}

// DepthError reports a resolution chain longer than the configured limit,
// which in practice means the binding graph has a cycle.
type DepthError struct {
	Path  []Key
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("di: resolution depth %d exceeded: %s", e.Limit, joinPath(e.Path))
}

// AppError maps the error onto the DEPTH_EXCEEDED code.
func (e *DepthError) AppError() *apperrors.AppError {
	path := make([]string, len(e.Path))
	for i, k := range e.Path {
		path[i] = k.String()
	}
	return apperrors.DepthExceeded(path, e.Limit)
}

func joinPath(path []Key) string {
	names := make([]string, len(path))
	for i, k := range path {
		names[i] = k.ShortString()
	}
	return strings.Join(names, " -> ")
}

// RegistrationError reports a failed registration. A failed singleton build
// leaves the table as it was before the call. A failed eager scoped build keeps
// the new scoped binding, replacing whatever was bound to the key before.
type RegistrationError struct {
	Key       Key
	Lifecycle Lifecycle
	Cause     error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("di: registering %s as %s: %v", e.Key.ShortString(), e.Lifecycle, e.Cause)
}

func (e *RegistrationError) Unwrap() error { return e.Cause }

// AppError maps the error onto the REGISTRATION_FAILED code, keeping the
// underlying code in the details.
func (e *RegistrationError) AppError() *apperrors.AppError {
	appErr := apperrors.RegistrationFailed(e.Key.String(), e.Lifecycle.String(), e.Cause)
	var coder apperrors.Coder
	if errors.As(e.Cause, &coder) {
		if inner := coder.AppError(); inner != nil {
			appErr.WithDetail("cause_code", inner.Code)
		}
	}
	return appErr
}
