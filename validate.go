package acorn

import (
	"fmt"
	"reflect"
)

type buildState int

const (
	unvisited buildState = iota
	visiting
	visited
)

// validate walks the dependency graph of every component depth-first,
// choosing constructors the way activation would, without constructing
// anything.
func (c *container) validate() error {
	states := make(map[*component]buildState, len(c.components))

	for _, comp := range c.components {
		key := serviceKey{t: comp.implType}
		if len(comp.services) > 0 {
			key = comp.services[0]
		}
		if err := c.validateComponent(comp, key, states, nil); err != nil {
			return err
		}
	}
	return nil
}

func (c *container) validateComponent(comp *component, key serviceKey, states map[*component]buildState, stack []reflect.Type) error {
	switch states[comp] {
	case visiting:
		chain := append(append([]reflect.Type(nil), stack...), comp.implType)
		return &ResolutionError{
			Service: key.t,
			Name:    key.name,
			Err:     fmt.Errorf("%w: %s", ErrCircularDependency, formatChain(chain)),
		}
	case visited:
		return nil
	}

	if comp.instance.IsValid() {
		states[comp] = visited
		return nil
	}

	states[comp] = visiting
	stack = append(stack, comp.implType)

	ctor, err := c.selectConstructor(comp)
	if err != nil {
		return &ResolutionError{Service: key.t, Name: key.name, Chain: stack[:len(stack)-1], Err: err}
	}

	for _, p := range ctor.params {
		if err := c.validateParam(p, states, stack); err != nil {
			if comp.pinned >= 0 {
				return fmt.Errorf("%w: %s cannot be satisfied: %w", ErrConstructorMismatch, ctor, err)
			}
			return err
		}
	}

	states[comp] = visited
	return nil
}

func (c *container) validateParam(p reflect.Type, states map[*component]buildState, stack []reflect.Type) error {
	key := serviceKey{t: p}
	if dep, ok := c.defaults[key]; ok {
		return c.validateComponent(dep, key, states, stack)
	}

	switch {
	case p == containerType:
		return nil
	case p.Kind() == reflect.Slice:
		elem := serviceKey{t: p.Elem()}
		for _, dep := range c.all[elem] {
			if err := c.validateComponent(dep, elem, states, stack); err != nil {
				return err
			}
		}
		return nil
	}

	return &ResolutionError{Service: p, Chain: stack, Err: ErrUnresolvedDependency}
}
