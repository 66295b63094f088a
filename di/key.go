package di

import (
	"reflect"
	"strings"
)

// Key identifies a binding by Go type. Two keys are equal when they were
// derived from the same type, so a Key can be used directly as a map key.
type Key struct {
	typ reflect.Type
}

// KeyOf returns the key for T. Interfaces are the usual choice:
//
//	di.KeyOf[UserRepository]()
func KeyOf[T any]() Key {
	return Key{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// Type returns the underlying reflect.Type, or nil for the zero Key.
func (k Key) Type() reflect.Type {
	return k.typ
}

// IsZero reports whether k was not derived from any type.
func (k Key) IsZero() bool {
	return k.typ == nil
}

// String returns the package-qualified type name, e.g.
// "github.com/acme/app/store.UserRepository". Unnamed types such as
// pointers and slices fall back to reflect's short form.
func (k Key) String() string {
	if k.typ == nil {
		return "<nil>"
	}
	if k.typ.Name() != "" && k.typ.PkgPath() != "" {
		return k.typ.PkgPath() + "." + k.typ.Name()
	}
	return k.typ.String()
}

// ShortString returns the type as Go prints it ("store.UserRepository").
func (k Key) ShortString() string {
	if k.typ == nil {
		return "<nil>"
	}
	return k.typ.String()
}

func joinKeys(keys []Key) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.ShortString()
	}
	return strings.Join(names, ", ")
}
