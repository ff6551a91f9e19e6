// Package acorn provides a reflection-based dependency injection container
// with Autofac-style registration semantics.
//
// Components are registered on a [Builder] with one or more constructor
// functions, exposed under the services (usually interfaces) they implement,
// then [Builder.Build] freezes the registrations into a [Container] that
// resolves fully-assembled objects with [Resolve].
//
// # Quick Start
//
//	b := acorn.NewBuilder()
//	b.RegisterType(NewEmailLog).As(acorn.Type[Log]())
//	b.RegisterType(NewEngine)
//	b.RegisterType(NewCar)
//	c, err := b.Build()
//
//	car, err := acorn.Resolve[*Car](c)
//
// # Defaults
//
// When several components are exposed as the same service, the last one
// registered becomes the default unless it was registered with
// [Registration.PreserveExistingDefaults]. All of them remain available
// through [ResolveAll] and as []T constructor parameters.
//
// # Lifetimes
//
// [PerDependency] (default) constructs a fresh instance for every resolution.
// [SingleInstance] constructs once, on first resolution, and shares the value
// for the lifetime of the container. Instances given to
// [Builder.RegisterInstance] are always returned as is.
//
// # Constructors
//
// A component may have several constructors:
//
//	b.RegisterType(NewCar, NewCarWithLog)
//
// The container uses the one with the most parameters that all have a
// registration, the first declared on equal counts. Pin a specific one with
// [Registration.UsingConstructor]:
//
//	b.RegisterType(NewCar, NewCarWithLog).UsingConstructor(acorn.Type[*Engine]())
package acorn
