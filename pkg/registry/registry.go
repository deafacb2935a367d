package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/waymark/pkg/domain"
)

// Guards maps guard names to host-provided predicates, so declarative
// catalogs can reference logic that only exists in Go code.
type Guards struct {
	mu     sync.RWMutex
	guards map[string]domain.Guard
}

// NewGuards creates a new empty guard table.
func NewGuards() *Guards {
	return &Guards{
		guards: make(map[string]domain.Guard),
	}
}

// Register adds a guard to the table.
// If a guard with the same name exists, it is overwritten.
func (g *Guards) Register(name string, guard domain.Guard) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.guards[name] = guard
}

// RegisterFunc is a shorthand for Register(name, domain.GuardFunc(fn)).
func (g *Guards) RegisterFunc(name string, fn func(r domain.Resource) (bool, error)) {
	g.Register(name, domain.GuardFunc(fn))
}

// Lookup returns the guard registered under name.
// Returns an error if the guard is not found.
func (g *Guards) Lookup(name string) (domain.Guard, error) {
	g.mu.RLock()
	guard, ok := g.guards[name]
	g.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("guard not found: %s", name)
	}
	return guard, nil
}

// Names lists the registered guard names, sorted.
func (g *Guards) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.guards))
	for name := range g.guards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
