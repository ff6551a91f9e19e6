package acorn

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
)

// request tracks one top-level resolution: the components being activated,
// outermost first.
type request struct {
	stack []*component
}

func (r *request) onStack(comp *component) bool {
	for _, s := range r.stack {
		if s == comp {
			return true
		}
	}
	return false
}

func (r *request) chain() []reflect.Type {
	chain := make([]reflect.Type, len(r.stack))
	for i, s := range r.stack {
		chain[i] = s.implType
	}
	return chain
}

func (r *request) fail(key serviceKey, err error) error {
	var re *ResolutionError
	if errors.As(err, &re) {
		return err
	}
	return &ResolutionError{Service: key.t, Name: key.name, Chain: r.chain(), Err: err}
}

// ---------------------------------------------------------------------------
// Container methods
// ---------------------------------------------------------------------------

func (c *container) Resolve(t reflect.Type) (reflect.Value, error) {
	return c.resolveRoot(&request{}, serviceKey{t: t})
}

func (c *container) ResolveNamed(name string, t reflect.Type) (reflect.Value, error) {
	return c.resolveRoot(&request{}, serviceKey{t: t, name: name})
}

func (c *container) ResolveAll(t reflect.Type) (reflect.Value, error) {
	return c.collectRoot(&request{}, t)
}

func (c *container) resolveRoot(req *request, key serviceKey) (reflect.Value, error) {
	if key.t == nil {
		return reflect.Value{}, fmt.Errorf("%w: service type is nil", ErrUnresolvedDependency)
	}
	if c.isShutdown() {
		return reflect.Value{}, ErrAlreadyShutdown
	}

	v, err := c.resolve(req, key)
	if err != nil {
		return reflect.Value{}, err
	}
	return as(v, key.t), nil
}

func (c *container) collectRoot(req *request, t reflect.Type) (reflect.Value, error) {
	if t == nil {
		return reflect.Value{}, fmt.Errorf("%w: service type is nil", ErrUnresolvedDependency)
	}
	if c.isShutdown() {
		return reflect.Value{}, ErrAlreadyShutdown
	}
	return c.collect(req, t)
}

// injected is the Container handed to constructors. Resolutions through it
// continue the activation stack captured at injection, so a constructor
// resolving one of its dependents reports ErrCircularDependency.
type injected struct {
	*container
	stack []*component
}

func (i *injected) request() *request {
	return &request{stack: append([]*component(nil), i.stack...)}
}

func (i *injected) Resolve(t reflect.Type) (reflect.Value, error) {
	return i.resolveRoot(i.request(), serviceKey{t: t})
}

func (i *injected) ResolveNamed(name string, t reflect.Type) (reflect.Value, error) {
	return i.resolveRoot(i.request(), serviceKey{t: t, name: name})
}

func (i *injected) ResolveAll(t reflect.Type) (reflect.Value, error) {
	return i.collectRoot(i.request(), t)
}

// ---------------------------------------------------------------------------
// Internal
// ---------------------------------------------------------------------------

// canResolve is the shallow check used for constructor selection.
func (c *container) canResolve(key serviceKey) bool {
	if _, ok := c.defaults[key]; ok {
		return true
	}
	return key.name == "" && (key.t == containerType || key.t.Kind() == reflect.Slice)
}

func (c *container) resolve(req *request, key serviceKey) (reflect.Value, error) {
	comp, ok := c.defaults[key]
	if !ok {
		switch {
		case key.name != "":
		case key.t == containerType:
			inj := &injected{container: c, stack: append([]*component(nil), req.stack...)}
			return as(reflect.ValueOf(inj), containerType), nil
		case key.t.Kind() == reflect.Slice:
			return c.collect(req, key.t.Elem())
		}
		return reflect.Value{}, req.fail(key, ErrUnresolvedDependency)
	}
	return c.activate(req, key, comp)
}

// collect activates every component exposed as elem into a []elem.
func (c *container) collect(req *request, elem reflect.Type) (reflect.Value, error) {
	key := serviceKey{t: elem}
	comps := c.all[key]
	out := reflect.MakeSlice(reflect.SliceOf(elem), 0, len(comps))
	for _, comp := range comps {
		v, err := c.activate(req, key, comp)
		if err != nil {
			return reflect.Value{}, err
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

func (c *container) activate(req *request, key serviceKey, comp *component) (reflect.Value, error) {
	if comp.instance.IsValid() {
		return comp.instance, nil
	}

	if comp.lifetime == SingleInstance {
		if v, ok := c.cached(comp); ok {
			return v, nil
		}
	}

	if req.onStack(comp) {
		chain := append(req.chain(), comp.implType)
		return reflect.Value{}, &ResolutionError{
			Service: key.t,
			Name:    key.name,
			Err:     fmt.Errorf("%w: %s", ErrCircularDependency, formatChain(chain)),
		}
	}

	if comp.lifetime == SingleInstance {
		// Lock order follows the dependency graph, which is acyclic once the
		// stack check above has passed.
		comp.activation.Lock()
		defer comp.activation.Unlock()

		if v, ok := c.cached(comp); ok {
			return v, nil
		}
	}

	req.stack = append(req.stack, comp)
	defer func() { req.stack = req.stack[:len(req.stack)-1] }()

	ctor, err := c.selectConstructor(comp)
	if err != nil {
		return reflect.Value{}, req.fail(key, err)
	}

	args := make([]reflect.Value, len(ctor.params))
	for i, p := range ctor.params {
		arg, err := c.resolve(req, serviceKey{t: p})
		if err != nil {
			if comp.pinned >= 0 {
				return reflect.Value{}, req.fail(key, fmt.Errorf("%w: %s cannot be satisfied: %w", ErrConstructorMismatch, ctor, err))
			}
			return reflect.Value{}, err
		}
		args[i] = arg
	}

	v, err := ctor.call(args)
	if err != nil {
		return reflect.Value{}, req.fail(key, fmt.Errorf("constructing %s: %w", comp.implType, err))
	}

	if comp.lifetime == SingleInstance {
		if err := c.store(comp, v); err != nil {
			return reflect.Value{}, req.fail(key, err)
		}
		c.log.WithFields(logrus.Fields{
			"service":        key.String(),
			"implementation": typeName(comp.implType),
		}).Debug("activated single instance")
	}

	return v, nil
}

// as returns v typed as t, boxing concrete values into interface types.
func as(v reflect.Value, t reflect.Type) reflect.Value {
	if v.Type() == t {
		return v
	}
	out := reflect.New(t).Elem()
	out.Set(v)
	return out
}

// ---------------------------------------------------------------------------
// Generic helpers
// ---------------------------------------------------------------------------

// Type returns the [reflect.Type] of T. It is the way to name interface types
// for [Registration.As] and [Registration.UsingConstructor]:
//
//	b.RegisterType(NewConsoleLog).As(acorn.Type[Log]())
func Type[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Resolve is a generic helper that resolves the default component for T. It
// is the recommended way to retrieve values:
//
//	car, err := acorn.Resolve[*Car](c)
func Resolve[T any](c Container) (T, error) {
	var zero T
	t := Type[T]()

	val, err := c.Resolve(t)
	if err != nil {
		return zero, err
	}

	out, ok := val.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("%w: cannot convert %s to %s", ErrTypeMismatch, val.Type(), t)
	}

	return out, nil
}

// ResolveNamed is a generic helper that resolves a named component:
//
//	log, err := acorn.ResolveNamed[Log](c, "email")
func ResolveNamed[T any](c Container, name string) (T, error) {
	var zero T
	t := Type[T]()

	val, err := c.ResolveNamed(name, t)
	if err != nil {
		return zero, err
	}

	out, ok := val.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("%w: named %q: cannot convert %s to %s", ErrTypeMismatch, name, val.Type(), t)
	}

	return out, nil
}

// ResolveAll is a generic helper that resolves every component exposed as T.
func ResolveAll[T any](c Container) ([]T, error) {
	t := Type[T]()

	val, err := c.ResolveAll(t)
	if err != nil {
		return nil, err
	}

	out, ok := val.Interface().([]T)
	if !ok {
		return nil, fmt.Errorf("%w: cannot convert %s to []%s", ErrTypeMismatch, val.Type(), t)
	}

	return out, nil
}

// MustResolve is like [Resolve] but panics on error. It suits composition
// roots where a wiring mistake is fatal anyway.
func MustResolve[T any](c Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("acorn: %v", err))
	}
	return v
}
