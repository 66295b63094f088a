package di

import (
	"fmt"
	"reflect"
)

// Implementation describes a concrete type the container can build. The
// order of Constructors is the declaration order used to break ties between
// equally cheap candidates.
type Implementation struct {
	Name         string
	Constructors []Constructor

	// typ is set by Implement and lets registration reject bindings whose
	// product cannot be assigned to the key type.
	typ reflect.Type
}

// Implement describes T with the given constructors.
//
//	di.Implement[*PostgresRepo](
//	    di.Ctor1(NewPostgresRepo),
//	    di.Ctor2(NewPostgresRepoWithCache),
//	)
func Implement[T any](ctors ...Constructor) Implementation {
	k := KeyOf[T]()
	return Implementation{
		Name:         k.ShortString(),
		Constructors: ctors,
		typ:          k.Type(),
	}
}

// Value describes an implementation whose only constructor returns v. It is
// handy for scoped bindings of value types and in tests.
func Value[T any](v T) Implementation {
	return Implement[T](Ctor0(func() T { return v }))
}

// checkAssignable fails when impl is known to produce a type that cannot be
// stored under key.
func (impl Implementation) checkAssignable(key Key) error {
	if impl.typ == nil || key.IsZero() {
		return nil
	}
	if !impl.typ.AssignableTo(key.Type()) {
		return fmt.Errorf("%s is not assignable to %s", impl.Name, key.ShortString())
	}
	return nil
}

// ProducedType returns the Go type built by the implementation, or nil when
// it was declared without Implement.
func (impl Implementation) ProducedType() reflect.Type {
	return impl.typ
}
