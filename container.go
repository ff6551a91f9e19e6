package acorn

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
)

// Container defines the interface for a built dependency injection container.
// Use [Builder.Build] to create an instance.
type Container interface {
	// Resolve returns the default component for service t. Pre-built
	// instances are returned as is, [SingleInstance] components are
	// constructed once and cached, [PerDependency] components are constructed
	// on every call. When a component has several constructors the satisfiable
	// one with the most parameters wins, the first declared on equal counts.
	// Prefer the generic [Resolve] helper over calling this method directly.
	Resolve(t reflect.Type) (reflect.Value, error)

	// ResolveNamed returns the component registered with
	// [Registration.Named] under name and service t.
	ResolveNamed(name string, t reflect.Type) (reflect.Value, error)

	// ResolveAll returns a []t holding every component exposed as t, in
	// registration order, defaults or not. The slice is empty when nothing is
	// registered.
	ResolveAll(t reflect.Type) (reflect.Value, error)

	// IsRegistered reports whether service t has a default component.
	IsRegistered(t reflect.Type) bool

	// Shutdown closes every single instance the container constructed that
	// implements [io.Closer], in reverse activation order (dependents are
	// closed before their dependencies). Registered instances are owned by
	// the caller and left alone. The context controls the overall deadline;
	// if it expires, remaining closers are skipped and the context error is
	// included in the result.
	//
	// Subsequent calls return [ErrAlreadyShutdown], as do resolutions
	// started after Shutdown.
	Shutdown(ctx context.Context) error
}

var containerType = reflect.TypeOf((*Container)(nil)).Elem()

type container struct {
	log logrus.FieldLogger

	components []*component
	defaults   map[serviceKey]*component
	all        map[serviceKey][]*component

	mu         sync.RWMutex
	singletons map[*component]reflect.Value

	// closers holds constructed single instances that implement io.Closer,
	// in activation order. Shutdown iterates them in reverse.
	closers []io.Closer

	shutdown bool
}

func newContainer(log logrus.FieldLogger, comps []*component) *container {
	c := &container{
		log:        log,
		components: comps,
		defaults:   make(map[serviceKey]*component),
		all:        make(map[serviceKey][]*component),
		singletons: make(map[*component]reflect.Value),
	}

	for _, comp := range comps {
		for _, key := range comp.services {
			entry := log.WithFields(logrus.Fields{
				"service":        key.String(),
				"implementation": typeName(comp.implType),
				"lifetime":       comp.lifetime.String(),
			})

			c.all[key] = append(c.all[key], comp)

			prev, exists := c.defaults[key]
			switch {
			case !exists:
				c.defaults[key] = comp
				entry.Debug("registered default")
			case comp.preserve:
				entry.WithField("default", typeName(prev.implType)).Debug("preserved existing default")
			default:
				c.defaults[key] = comp
				entry.WithField("previous", typeName(prev.implType)).Debug("replaced default")
			}
		}
	}

	return c
}

func (c *container) IsRegistered(t reflect.Type) bool {
	_, ok := c.defaults[serviceKey{t: t}]
	return ok
}

func (c *container) isShutdown() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shutdown
}

func (c *container) cached(comp *component) (reflect.Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.singletons[comp]
	return v, ok
}

// store caches a constructed single instance. Once the container is shut
// down nothing is cached any more: a closer finishing activation late is
// closed here and ErrAlreadyShutdown is returned.
func (c *container) store(comp *component, v reflect.Value) error {
	var closer io.Closer
	if v.CanInterface() {
		closer, _ = v.Interface().(io.Closer)
	}

	c.mu.Lock()
	if c.shutdown {
		c.mu.Unlock()
		if closer != nil {
			c.close(closer)
		}
		return ErrAlreadyShutdown
	}
	c.singletons[comp] = v
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
	c.mu.Unlock()
	return nil
}

func (c *container) close(closer io.Closer) error {
	err := closer.Close()
	if err != nil {
		c.log.WithError(err).WithField("instance", reflect.TypeOf(closer).String()).Warn("close failed")
	}
	return err
}

// ---------------------------------------------------------------------------
// Shutdown
// ---------------------------------------------------------------------------

func (c *container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	if c.shutdown {
		c.mu.Unlock()
		return ErrAlreadyShutdown
	}
	c.shutdown = true
	closers := c.closers
	c.closers = nil
	c.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := c.close(closers[i]); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
