package acorn

import (
	"errors"
	"reflect"
	"strings"
)

var (
	// ErrUnresolvedDependency is returned when no registration can satisfy the
	// requested service, either directly or as a constructor parameter.
	ErrUnresolvedDependency = errors.New("unresolved dependency")

	// ErrAmbiguousConstructor is returned when two constructors of the same
	// registration take the same set of parameter types and both can be
	// satisfied.
	ErrAmbiguousConstructor = errors.New("ambiguous constructor")

	// ErrConstructorMismatch is returned when the constructor selected with
	// [Registration.UsingConstructor] does not exist or cannot be satisfied.
	ErrConstructorMismatch = errors.New("constructor mismatch")

	// ErrCircularDependency is returned when resolution reaches a registration
	// that is already being activated. The error message includes the full
	// chain.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrInvalidRegistration is returned by [Builder.Build] for malformed
	// registrations: non-function constructors, bad return signatures, nil
	// instances, services the implementation is not assignable to.
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrAlreadyBuilt is returned when a [Builder] is used after Build.
	ErrAlreadyBuilt = errors.New("builder already built")

	// ErrAlreadyShutdown is returned by a second [Container.Shutdown] call.
	ErrAlreadyShutdown = errors.New("container already shut down")

	// ErrTypeMismatch is returned by the generic helpers when the resolved value
	// cannot be converted to the requested type parameter.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ResolutionError describes a failed resolution. Chain holds the services
// being activated when the failure happened, outermost first.
type ResolutionError struct {
	Service reflect.Type
	Name    string
	Chain   []reflect.Type
	Err     error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	var sb strings.Builder
	sb.WriteString("resolving ")
	if e.Name != "" {
		sb.WriteString(e.Name)
		sb.WriteString(" ")
	}
	sb.WriteString(typeName(e.Service))
	if len(e.Chain) > 0 {
		sb.WriteString(" (via ")
		sb.WriteString(formatChain(e.Chain))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

// Unwrap returns the underlying cause, usually one of the package sentinels.
func (e *ResolutionError) Unwrap() error { return e.Err }

func formatChain(chain []reflect.Type) string {
	names := make([]string, len(chain))
	for i, t := range chain {
		names[i] = typeName(t)
	}
	return strings.Join(names, " -> ")
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
