package domain

import "fmt"

// Registry holds the transitions declared for one resource kind.
// It is immutable once built and safe for concurrent reads.
type Registry struct {
	kind        string
	transitions []Transition
	index       map[string]int
}

// NewRegistry builds a registry preserving the declaration order of
// transitions. Names must be non-empty and unique.
func NewRegistry(kind string, transitions ...Transition) (*Registry, error) {
	reg := &Registry{
		kind:        kind,
		transitions: make([]Transition, 0, len(transitions)),
		index:       make(map[string]int, len(transitions)),
	}
	for _, t := range transitions {
		if t.Name == "" {
			return nil, fmt.Errorf("registry '%s': transition name is required", kind)
		}
		if _, dup := reg.index[t.Name]; dup {
			return nil, fmt.Errorf("registry '%s': transition '%s' declared twice", kind, t.Name)
		}
		reg.index[t.Name] = len(reg.transitions)
		reg.transitions = append(reg.transitions, t)
	}
	return reg, nil
}

// MustRegistry is like NewRegistry but panics on invalid declarations.
// Intended for package-level type declarations.
func MustRegistry(kind string, transitions ...Transition) *Registry {
	reg, err := NewRegistry(kind, transitions...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Kind returns the resource kind the registry belongs to.
func (r *Registry) Kind() string {
	if r == nil {
		return ""
	}
	return r.kind
}

// Lookup finds a transition by name.
func (r *Registry) Lookup(name string) (Transition, error) {
	if r != nil {
		if i, ok := r.index[name]; ok {
			return r.transitions[i], nil
		}
	}
	return Transition{}, &UnknownTransitionError{Kind: r.Kind(), Name: name}
}

// Declared returns the transitions in declaration order.
// The returned slice is a copy.
func (r *Registry) Declared() []Transition {
	if r == nil {
		return nil
	}
	out := make([]Transition, len(r.transitions))
	copy(out, r.transitions)
	return out
}

// Len returns the number of declared transitions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.transitions)
}
