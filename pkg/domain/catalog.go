package domain

import (
	"fmt"
	"sort"
)

// Catalog maps resource kinds to their registries.
// Like Registry, it is built once and only read afterwards.
type Catalog struct {
	registries map[string]*Registry
}

// NewCatalog indexes the given registries by kind.
func NewCatalog(registries ...*Registry) (*Catalog, error) {
	c := &Catalog{registries: make(map[string]*Registry, len(registries))}
	for _, reg := range registries {
		if reg == nil {
			continue
		}
		if reg.Kind() == "" {
			return nil, fmt.Errorf("catalog: registry without kind")
		}
		if _, dup := c.registries[reg.Kind()]; dup {
			return nil, fmt.Errorf("catalog: kind '%s' declared twice", reg.Kind())
		}
		c.registries[reg.Kind()] = reg
	}
	return c, nil
}

// Registry returns the registry for kind.
func (c *Catalog) Registry(kind string) (*Registry, bool) {
	if c == nil {
		return nil, false
	}
	reg, ok := c.registries[kind]
	return reg, ok
}

// Kinds returns the declared kinds, sorted.
func (c *Catalog) Kinds() []string {
	if c == nil {
		return nil
	}
	kinds := make([]string, 0, len(c.registries))
	for k := range c.registries {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Bind returns a copy of rec attached to the registry of its kind.
func (c *Catalog) Bind(rec *Record) (*Record, error) {
	if rec == nil {
		return nil, fmt.Errorf("catalog: nil record")
	}
	reg, ok := c.Registry(rec.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, rec.Kind)
	}
	return rec.WithRegistry(reg), nil
}
