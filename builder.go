package acorn

import (
	"errors"
	"fmt"
	"sync"
)

// Module groups related registrations so they can be added in one call.
type Module interface {
	Load(b *Builder) error
}

// ModuleFunc adapts a function to the [Module] interface.
type ModuleFunc func(b *Builder) error

// Load calls f(b).
func (f ModuleFunc) Load(b *Builder) error { return f(b) }

// Builder collects registrations and produces an immutable [Container].
// Use [NewBuilder] to create one.
type Builder struct {
	mu sync.Mutex

	settings settings
	regs     []*Registration
	errs     []error
	built    bool
}

// NewBuilder creates an empty [Builder].
func NewBuilder(opts ...Option) *Builder {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &Builder{settings: s}
}

// RegisterType registers a component built by one of the given constructors.
// Every constructor must be a function with the signature func(deps...) T or
// func(deps...) (T, error), all returning the same T. Dependencies are
// expressed as parameters and resolved by type. When several constructors are
// given the container picks one per [Registration.UsingConstructor] or by the
// greedy rule described on [Container.Resolve].
func (b *Builder) RegisterType(constructors ...interface{}) *Registration {
	r := &Registration{ctors: constructors}
	b.add(r)
	return r
}

// RegisterInstance registers a pre-built value. The container never constructs
// it and never closes it; every resolution returns value itself.
func (b *Builder) RegisterInstance(value interface{}) *Registration {
	r := &Registration{instance: value, isInst: true, lifetime: SingleInstance}
	b.add(r)
	return r
}

// RegisterModule loads m into the builder immediately. An error returned by
// the module is reported by Build.
func (b *Builder) RegisterModule(m Module) *Builder {
	if m == nil {
		b.record(errors.New("RegisterModule: module is nil"))
		return b
	}
	if err := m.Load(b); err != nil {
		b.record(fmt.Errorf("loading module %T: %w", m, err))
	}
	return b
}

func (b *Builder) add(r *Registration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		r.fail(ErrAlreadyBuilt)
		return
	}
	b.regs = append(b.regs, r)
}

func (b *Builder) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.errs = append(b.errs, err)
}

// Build validates every registration, decides the default component of each
// service, and returns the container. Missing dependencies are not reported
// here unless [WithValidation] is set; resolution is lazy. On failure all
// registration errors are returned joined and no container is produced.
// Build succeeds at most once.
func (b *Builder) Build() (Container, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		return nil, ErrAlreadyBuilt
	}

	errs := append([]error(nil), b.errs...)
	comps := make([]*component, 0, len(b.regs))
	for i, r := range b.regs {
		comp, err := r.freeze(i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		comps = append(comps, comp)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	c := newContainer(b.settings.logger, comps)
	if b.settings.validate {
		if err := c.validate(); err != nil {
			return nil, err
		}
	}

	b.built = true
	return c, nil
}
