package dsl

import (
	"fmt"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/hashicorp/go-multierror"
	"github.com/yosida95/uritemplate/v3"
)

// Builder manages the declaration of a resource type's transitions.
type Builder struct {
	kind        string
	order       []string
	transitions map[string]*TransitionBuilder
}

// New creates a new registry builder for kind.
func New(kind string) *Builder {
	return &Builder{
		kind:        kind,
		transitions: make(map[string]*TransitionBuilder),
	}
}

// Add declares a new transition.
// If the transition already exists, it returns the existing builder.
func (b *Builder) Add(name string) *TransitionBuilder {
	if tb, ok := b.transitions[name]; ok {
		return tb
	}
	tb := &TransitionBuilder{
		transition: domain.Transition{
			Name: name,
		},
		builder: b,
	}
	b.transitions[name] = tb
	b.order = append(b.order, name)
	return tb
}

// Build validates every declaration and compiles them into an immutable
// registry. All problems are reported at once.
func (b *Builder) Build() (*domain.Registry, error) {
	var result *multierror.Error
	transitions := make([]domain.Transition, 0, len(b.order))

	for _, name := range b.order {
		tb := b.transitions[name]
		for _, err := range tb.errs {
			result = multierror.Append(result, fmt.Errorf("transition '%s': %w", name, err))
		}
		if tb.transition.Href == "" {
			result = multierror.Append(result, fmt.Errorf("transition '%s': href is required", name))
		} else if _, err := uritemplate.New(tb.transition.Href); err != nil {
			result = multierror.Append(result, fmt.Errorf("transition '%s': invalid href template: %w", name, err))
		}
		transitions = append(transitions, tb.transition)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("failed to build registry '%s': %w", b.kind, err)
	}

	return domain.NewRegistry(b.kind, transitions...)
}

// MustBuild is like Build but panics on invalid declarations.
func (b *Builder) MustBuild() *domain.Registry {
	reg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return reg
}
