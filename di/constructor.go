package di

import (
	"fmt"
)

// BuildFunc produces an instance from resolved parameter values. args has
// exactly one entry per Constructor.Params entry, in the same order.
type BuildFunc func(args []any) (any, error)

// Constructor is one candidate means of building an implementation: an
// ordered list of parameter keys and the function that consumes them.
type Constructor struct {
	// Name is an optional label used in diagnostics, e.g. "NewUserService".
	Name   string
	Params []Key
	Build  BuildFunc
}

// NewConstructor creates a constructor from explicit parameter keys. Prefer
// the typed Ctor helpers; this form exists for generated or dynamic wiring.
func NewConstructor(name string, params []Key, build BuildFunc) Constructor {
	return Constructor{Name: name, Params: params, Build: build}
}

// Arity returns the number of parameters.
func (c Constructor) Arity() int {
	return len(c.Params)
}

// Named returns a copy of c with the given diagnostic label.
func (c Constructor) Named(name string) Constructor {
	c.Name = name
	return c
}

// Signature renders the constructor as "label(param, param)". owner is used
// when the constructor carries no label of its own.
func (c Constructor) Signature(owner string) string {
	name := c.Name
	if name == "" {
		name = owner
	}
	return name + "(" + joinKeys(c.Params) + ")"
}

// Ctor0 adapts a parameterless function.
func Ctor0[T any](fn func() T) Constructor {
	return Ctor0E(func() (T, error) { return fn(), nil })
}

// Ctor0E adapts a parameterless function that may fail.
func Ctor0E[T any](fn func() (T, error)) Constructor {
	return Constructor{
		Build: func(args []any) (any, error) {
			return fn()
		},
	}
}

// Ctor1 adapts a one-parameter function; the parameter key is A.
func Ctor1[T, A any](fn func(A) T) Constructor {
	return Ctor1E(func(a A) (T, error) { return fn(a), nil })
}

// Ctor1E adapts a one-parameter function that may fail.
func Ctor1E[T, A any](fn func(A) (T, error)) Constructor {
	return Constructor{
		Params: []Key{KeyOf[A]()},
		Build: func(args []any) (any, error) {
			a, err := argAs[A](args, 0)
			if err != nil {
				return nil, err
			}
			return fn(a)
		},
	}
}

// Ctor2 adapts a two-parameter function.
func Ctor2[T, A, B any](fn func(A, B) T) Constructor {
	return Ctor2E(func(a A, b B) (T, error) { return fn(a, b), nil })
}

// Ctor2E adapts a two-parameter function that may fail.
func Ctor2E[T, A, B any](fn func(A, B) (T, error)) Constructor {
	return Constructor{
		Params: []Key{KeyOf[A](), KeyOf[B]()},
		Build: func(args []any) (any, error) {
			a, err := argAs[A](args, 0)
			if err != nil {
				return nil, err
			}
			b, err := argAs[B](args, 1)
			if err != nil {
				return nil, err
			}
			return fn(a, b)
		},
	}
}

// Ctor3 adapts a three-parameter function.
func Ctor3[T, A, B, C any](fn func(A, B, C) T) Constructor {
	return Ctor3E(func(a A, b B, c C) (T, error) { return fn(a, b, c), nil })
}

// Ctor3E adapts a three-parameter function that may fail.
func Ctor3E[T, A, B, C any](fn func(A, B, C) (T, error)) Constructor {
	return Constructor{
		Params: []Key{KeyOf[A](), KeyOf[B](), KeyOf[C]()},
		Build: func(args []any) (any, error) {
			a, err := argAs[A](args, 0)
			if err != nil {
				return nil, err
			}
			b, err := argAs[B](args, 1)
			if err != nil {
				return nil, err
			}
			c, err := argAs[C](args, 2)
			if err != nil {
				return nil, err
			}
			return fn(a, b, c)
		},
	}
}

// argAs converts a resolved argument to its declared parameter type. A nil
// argument becomes the zero value.
func argAs[A any](args []any, i int) (A, error) {
	var zero A
	if i >= len(args) {
		return zero, fmt.Errorf("parameter %d missing: got %d arguments", i, len(args))
	}
	if args[i] == nil {
		return zero, nil
	}
	v, ok := args[i].(A)
	if !ok {
		return zero, fmt.Errorf("parameter %d is %T, expected %s", i, args[i], KeyOf[A]().ShortString())
	}
	return v, nil
}
