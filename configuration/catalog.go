package configuration

import (
	"reflect"
	"sort"
	"sync"
)

// Catalog maps the names used in a component file to Go values: constructor
// sets, pre-built instances and service types.
type Catalog struct {
	mu sync.RWMutex

	types     map[string][]interface{}
	instances map[string]interface{}
	services  map[string]reflect.Type
}

// NewCatalog creates an empty [Catalog].
func NewCatalog() *Catalog {
	return &Catalog{
		types:     make(map[string][]interface{}),
		instances: make(map[string]interface{}),
		services:  make(map[string]reflect.Type),
	}
}

// AddType makes the constructor set ctors available as component type name.
// Registering a name twice replaces the earlier entry.
func (c *Catalog) AddType(name string, ctors ...interface{}) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.instances, name)
	c.types[name] = ctors
	return c
}

// AddInstance makes the pre-built value v available as component type name.
func (c *Catalog) AddInstance(name string, v interface{}) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.types, name)
	c.instances[name] = v
	return c
}

// AddService names a service type. Service names are used by the services and
// constructor fields of a component.
func (c *Catalog) AddService(name string, t reflect.Type) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.services[name] = t
	return c
}

// Names returns the component type names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.types)+len(c.instances))
	for n := range c.types {
		names = append(names, n)
	}
	for n := range c.instances {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) lookupType(name string) (ctors []interface{}, instance interface{}, isInst, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if ctors, ok := c.types[name]; ok {
		return ctors, nil, false, true
	}
	if v, ok := c.instances[name]; ok {
		return nil, v, true, true
	}
	return nil, nil, false, false
}

func (c *Catalog) lookupService(name string) (reflect.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.services[name]
	return t, ok
}
