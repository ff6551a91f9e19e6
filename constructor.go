package acorn

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// constructor holds the metadata for one constructor function of a
// registration.
type constructor struct {
	fn      reflect.Value
	params  []reflect.Type
	outType reflect.Type
}

func newConstructor(fn interface{}) (constructor, error) {
	if fn == nil {
		return constructor{}, errors.New("constructor must be a function, got nil")
	}

	val := reflect.ValueOf(fn)
	typ := val.Type()

	if typ.Kind() != reflect.Func {
		return constructor{}, fmt.Errorf("constructor must be a function, got %s", typ)
	}
	if val.IsNil() {
		return constructor{}, errors.New("constructor must be a non-nil function")
	}
	if typ.IsVariadic() {
		return constructor{}, fmt.Errorf("variadic constructor %s is not supported", typ)
	}

	if typ.NumOut() == 0 || typ.NumOut() > 2 {
		return constructor{}, fmt.Errorf("constructor %s must return (T) or (T, error)", typ)
	}
	if typ.NumOut() == 2 && typ.Out(1) != errorType {
		return constructor{}, fmt.Errorf("second return value of %s must be error", typ)
	}

	params := make([]reflect.Type, typ.NumIn())
	for i := range params {
		params[i] = typ.In(i)
	}

	return constructor{
		fn:      val,
		params:  params,
		outType: typ.Out(0),
	}, nil
}

// matches reports whether the parameter list is exactly types.
func (c constructor) matches(types []reflect.Type) bool {
	if len(c.params) != len(types) {
		return false
	}
	for i, p := range c.params {
		if p != types[i] {
			return false
		}
	}
	return true
}

// sameSignature reports whether both constructors take the same multiset of
// parameter types, regardless of order.
func (c constructor) sameSignature(o constructor) bool {
	if len(c.params) != len(o.params) {
		return false
	}
	counts := make(map[reflect.Type]int, len(c.params))
	for _, p := range c.params {
		counts[p]++
	}
	for _, p := range o.params {
		if counts[p] == 0 {
			return false
		}
		counts[p]--
	}
	return true
}

func (c constructor) call(args []reflect.Value) (reflect.Value, error) {
	results := c.fn.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}
	return results[0], nil
}

func (c constructor) String() string {
	return c.fn.Type().String()
}

func formatTypes(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = typeName(t)
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// selectConstructor picks the constructor used to activate comp. A pinned
// constructor always wins. Otherwise the satisfiable constructor with the most
// parameters is chosen, the first declared one on equal counts. Declaration
// order settles a tie between different parameter lists, so only a
// satisfiable twin taking the same parameter types as the winner is
// ErrAmbiguousConstructor.
func (c *container) selectConstructor(comp *component) (constructor, error) {
	if comp.pinned >= 0 {
		return comp.ctors[comp.pinned], nil
	}
	if len(comp.ctors) == 1 {
		return comp.ctors[0], nil
	}

	best := -1
	var missing []string
	for i, ct := range comp.ctors {
		if unmet := c.unsatisfied(ct); len(unmet) > 0 {
			missing = append(missing, fmt.Sprintf("%s needs %s", ct, formatTypes(unmet)))
			continue
		}
		if best < 0 || len(ct.params) > len(comp.ctors[best].params) {
			best = i
		}
	}

	if best < 0 {
		return constructor{}, fmt.Errorf("%w: no constructor of %s can be satisfied: %s",
			ErrUnresolvedDependency, comp.implType, strings.Join(missing, "; "))
	}

	winner := comp.ctors[best]
	for i, ct := range comp.ctors {
		if i == best || len(ct.params) != len(winner.params) {
			continue
		}
		if ct.sameSignature(winner) && len(c.unsatisfied(ct)) == 0 {
			return constructor{}, fmt.Errorf("%w: %s and %s of %s take the same parameters",
				ErrAmbiguousConstructor, winner, ct, comp.implType)
		}
	}

	return winner, nil
}

// unsatisfied returns the parameter types of ct that have no registration.
// The check is shallow: the parameters' own dependencies are not inspected.
func (c *container) unsatisfied(ct constructor) []reflect.Type {
	var unmet []reflect.Type
	for _, p := range ct.params {
		if !c.canResolve(serviceKey{t: p}) {
			unmet = append(unmet, p)
		}
	}
	return unmet
}
