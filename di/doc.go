// Package di provides a dependency injection container that builds object
// graphs from explicit constructor declarations.
//
// Each binding maps a type Key to either a pre-built instance or an
// Implementation: a concrete type plus one or more Constructors, each
// listing the keys it needs. When an implementation is built the container
// classifies every constructor as resolvable (all parameter keys bound) or
// blocked, picks the resolvable one with the fewest parameters, resolves
// its parameters recursively and runs it. If nothing is resolvable the
// ResolutionError names every blocked constructor and each parameter type
// that blocks it.
//
// # Lifecycles
//
// Singleton bindings are built once, at registration time, and the same
// instance is returned afterwards. Scoped bindings are built anew on every
// resolution.
//
// # Registration
//
//	c := di.NewContainer()
//	err := di.RegisterType[Clock](ctx, c, di.Implement[*systemClock](di.Ctor0(newSystemClock)), di.Singleton)
//	err = di.RegisterType[Service](ctx, c, di.Implement[*service](
//	    di.Ctor0(newService),
//	    di.Ctor1(newServiceWithClock),
//	), di.Scoped)
//
// # Resolution
//
//	svc, err := di.Resolve[Service](ctx, c)
//
// Resolving a key that was never registered is not an error for
// Container.Resolve, which reports found=false.
package di
