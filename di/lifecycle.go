package di

import (
	"fmt"
	"strings"
)

// Lifecycle decides whether a binding yields one cached instance or a fresh
// instance per resolution.
type Lifecycle int

const (
	// Scoped builds a new instance on every resolution. There is no
	// enclosing scope that caches it; the name is kept for familiarity.
	Scoped Lifecycle = iota
	// Singleton builds once at registration and hands out that instance.
	Singleton
)

// String returns the lowercase lifecycle name.
func (l Lifecycle) String() string {
	switch l {
	case Scoped:
		return "scoped"
	case Singleton:
		return "singleton"
	default:
		return fmt.Sprintf("lifecycle(%d)", int(l))
	}
}

// ParseLifecycle parses "singleton" or "scoped" (case-insensitive).
// "transient" is accepted as an alias for scoped.
func ParseLifecycle(s string) (Lifecycle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scoped", "transient", "":
		return Scoped, nil
	case "singleton":
		return Singleton, nil
	default:
		return Scoped, fmt.Errorf("unknown lifecycle %q (want singleton or scoped)", s)
	}
}
