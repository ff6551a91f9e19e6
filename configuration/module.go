package configuration

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/ARTM2000/acorn"
)

// Module returns an [acorn.Module] registering every component of f, in file
// order, with names resolved through cat. Nothing is registered if any
// component refers to an unknown name or lifetime.
func (f *File) Module(cat *Catalog) acorn.Module {
	return acorn.ModuleFunc(func(b *acorn.Builder) error {
		plans := make([]plan, 0, len(f.Components))
		var errs []error
		for i, c := range f.Components {
			p, err := c.plan(cat)
			if err != nil {
				errs = append(errs, fmt.Errorf("component #%d (%s): %w", i, c.Type, err))
				continue
			}
			plans = append(plans, p)
		}
		if len(errs) > 0 {
			return errors.Join(errs...)
		}

		for _, p := range plans {
			p.register(b)
		}
		return nil
	})
}

// plan is a component with every name resolved.
type plan struct {
	ctors    []interface{}
	instance interface{}
	isInst   bool

	services []reflect.Type
	name     string
	self     bool
	lifetime acorn.Lifetime
	preserve bool

	pinned    []reflect.Type
	hasPinned bool
}

func (c Component) plan(cat *Catalog) (plan, error) {
	var p plan
	var ok bool

	p.ctors, p.instance, p.isInst, ok = cat.lookupType(c.Type)
	if !ok {
		return plan{}, fmt.Errorf("%w: type %q", ErrUnknownName, c.Type)
	}

	p.lifetime, ok = acorn.ParseLifetime(c.Lifetime)
	if !ok {
		return plan{}, fmt.Errorf("%w: %q", ErrInvalidLifetime, c.Lifetime)
	}

	var err error
	if p.services, err = serviceTypes(cat, c.Services); err != nil {
		return plan{}, err
	}
	if c.Constructor != nil {
		if p.isInst {
			return plan{}, fmt.Errorf("%w: instance %q has no constructor to pin", ErrInvalidComponent, c.Type)
		}
		if p.pinned, err = serviceTypes(cat, c.Constructor); err != nil {
			return plan{}, err
		}
		p.hasPinned = true
	}

	p.name = c.Name
	p.self = c.Self
	p.preserve = c.PreserveExistingDefaults
	return p, nil
}

func (p plan) register(b *acorn.Builder) {
	var r *acorn.Registration
	if p.isInst {
		r = b.RegisterInstance(p.instance)
	} else {
		r = b.RegisterType(p.ctors...)
		if p.lifetime == acorn.SingleInstance {
			r.SingleInstance()
		}
		if p.hasPinned {
			r.UsingConstructor(p.pinned...)
		}
	}

	if p.name != "" {
		for _, t := range p.services {
			r.Named(p.name, t)
		}
	} else {
		r.As(p.services...)
	}
	if p.self {
		r.AsSelf()
	}
	if p.preserve {
		r.PreserveExistingDefaults()
	}
}

func serviceTypes(cat *Catalog, names []string) ([]reflect.Type, error) {
	types := make([]reflect.Type, 0, len(names))
	for _, n := range names {
		t, ok := cat.lookupService(n)
		if !ok {
			return nil, fmt.Errorf("%w: service %q", ErrUnknownName, n)
		}
		types = append(types, t)
	}
	return types, nil
}
