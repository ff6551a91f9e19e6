package acorn

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// serviceKey identifies a service. Unnamed keys form the default service
// space; named keys are only reachable through ResolveNamed.
type serviceKey struct {
	t    reflect.Type
	name string
}

func (k serviceKey) String() string {
	if k.name == "" {
		return typeName(k.t)
	}
	return fmt.Sprintf("%s (%q)", typeName(k.t), k.name)
}

// Registration configures one component on a [Builder]. Its methods return the
// receiver so calls can be chained:
//
//	b.RegisterType(NewConsoleLog).As(acorn.Type[Log]()).SingleInstance()
//
// Configuration mistakes are recorded on the registration and reported by
// [Builder.Build].
type Registration struct {
	mu sync.Mutex

	ctors    []interface{}
	instance interface{}
	isInst   bool

	services []serviceKey
	self     bool
	lifetime Lifetime
	preserve bool

	pinned    []reflect.Type
	hasPinned bool

	errs []error
}

// As exposes the component under each of the given service types, usually
// interfaces obtained with [Type]. Calling As more than once exposes the same
// component under several services.
func (r *Registration) As(types ...reflect.Type) *Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range types {
		if t == nil {
			r.errs = append(r.errs, errors.New("As: service type is nil"))
			continue
		}
		r.services = append(r.services, serviceKey{t: t})
	}
	return r
}

// AsSelf also exposes the component under its implementation type. A
// registration without As or Named is exposed as itself.
func (r *Registration) AsSelf() *Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.self = true
	return r
}

// Named exposes the component under service type t with the given name.
func (r *Registration) Named(name string, t reflect.Type) *Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case name == "":
		r.errs = append(r.errs, errors.New("Named: name cannot be empty"))
	case t == nil:
		r.errs = append(r.errs, fmt.Errorf("Named(%q): service type is nil", name))
	default:
		r.services = append(r.services, serviceKey{t: t, name: name})
	}
	return r
}

// SingleInstance makes the container construct the component once and reuse
// it for every resolution.
func (r *Registration) SingleInstance() *Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lifetime = SingleInstance
	return r
}

// InstancePerDependency restores the default lifetime: a new instance for
// every resolution. It cannot be used on instance registrations.
func (r *Registration) InstancePerDependency() *Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isInst {
		r.errs = append(r.errs, errors.New("InstancePerDependency: a registered instance is always a single instance"))
		return r
	}
	r.lifetime = PerDependency
	return r
}

// PreserveExistingDefaults keeps any default already registered for the
// exposed services. The component is still returned by ResolveAll, and
// becomes the default for services that had none.
func (r *Registration) PreserveExistingDefaults() *Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.preserve = true
	return r
}

// UsingConstructor pins activation to the constructor whose parameter list is
// exactly paramTypes. Build fails with [ErrConstructorMismatch] if there is
// none.
func (r *Registration) UsingConstructor(paramTypes ...reflect.Type) *Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isInst {
		r.errs = append(r.errs, errors.New("UsingConstructor: instance registrations have no constructor"))
		return r
	}
	r.pinned = append([]reflect.Type(nil), paramTypes...)
	r.hasPinned = true
	return r
}

// Err returns the configuration errors recorded so far, joined.
func (r *Registration) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return errors.Join(r.errs...)
}

func (r *Registration) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errs = append(r.errs, err)
}

// component is the immutable form of a Registration held by a built
// container.
type component struct {
	id       int
	implType reflect.Type
	ctors    []constructor
	pinned   int
	instance reflect.Value
	lifetime Lifetime
	preserve bool
	services []serviceKey

	// activation serialises construction of a single instance.
	activation sync.Mutex
}

// freeze validates the registration and converts it into a component.
func (r *Registration) freeze(id int) (*component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	errs := append([]error(nil), r.errs...)
	comp := &component{
		id:       id,
		pinned:   -1,
		lifetime: r.lifetime,
		preserve: r.preserve,
	}

	if r.isInst {
		val := reflect.ValueOf(r.instance)
		if !val.IsValid() || isNilValue(val) {
			errs = append(errs, errors.New("instance cannot be nil"))
		} else {
			comp.instance = val
			comp.implType = val.Type()
			comp.lifetime = SingleInstance
		}
	} else {
		if len(r.ctors) == 0 {
			errs = append(errs, errors.New("at least one constructor is required"))
		}
		for _, fn := range r.ctors {
			ct, err := newConstructor(fn)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if comp.implType == nil {
				comp.implType = ct.outType
			} else if ct.outType != comp.implType {
				errs = append(errs, fmt.Errorf("constructor %s returns %s, expected %s", ct, ct.outType, comp.implType))
				continue
			}
			comp.ctors = append(comp.ctors, ct)
		}
	}

	if comp.implType != nil {
		comp.services = r.exposedServices(comp.implType)
		for _, key := range comp.services {
			if !comp.implType.AssignableTo(key.t) {
				errs = append(errs, fmt.Errorf("%s is not assignable to service %s", comp.implType, key))
			}
		}
	}

	if r.hasPinned && len(comp.ctors) > 0 {
		for i, ct := range comp.ctors {
			if ct.matches(r.pinned) {
				comp.pinned = i
				break
			}
		}
		if comp.pinned < 0 {
			errs = append(errs, fmt.Errorf("%w: %s has no constructor taking %s",
				ErrConstructorMismatch, comp.implType, formatTypes(r.pinned)))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: registration #%d (%s): %w",
			ErrInvalidRegistration, id, typeName(comp.implType), errors.Join(errs...))
	}
	return comp, nil
}

// exposedServices returns the deduplicated service keys, falling back to the
// implementation type when nothing was requested.
func (r *Registration) exposedServices(impl reflect.Type) []serviceKey {
	keys := make([]serviceKey, 0, len(r.services)+1)
	seen := make(map[serviceKey]bool, len(r.services)+1)
	add := func(k serviceKey) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	if r.self || len(r.services) == 0 {
		add(serviceKey{t: impl})
	}
	for _, k := range r.services {
		add(k)
	}
	return keys
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
