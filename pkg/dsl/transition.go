package dsl

import (
	"github.com/aretw0/waymark/pkg/domain"
	"github.com/aretw0/waymark/pkg/guard"
)

// TransitionBuilder provides a fluent API for configuring a transition.
type TransitionBuilder struct {
	transition domain.Transition
	builder    *Builder
	errs       []error
}

// Rel sets the link relation (defaults to the transition name).
func (t *TransitionBuilder) Rel(rel string) *TransitionBuilder {
	t.transition.Rel = rel
	return t
}

// Href sets the URI template of the link.
func (t *TransitionBuilder) Href(template string) *TransitionBuilder {
	t.transition.Href = template
	return t
}

// Method sets the HTTP method used to follow the link.
func (t *TransitionBuilder) Method(method string) *TransitionBuilder {
	t.transition.Method = method
	return t
}

// When sets the guard of the transition.
func (t *TransitionBuilder) When(g domain.Guard) *TransitionBuilder {
	t.transition.Guard = g
	return t
}

// WhenFunc sets a function guard.
func (t *TransitionBuilder) WhenFunc(fn func(r domain.Resource) (bool, error)) *TransitionBuilder {
	return t.When(domain.GuardFunc(fn))
}

// If sets an expression guard. Parse errors surface from Builder.Build.
func (t *TransitionBuilder) If(expression string) *TransitionBuilder {
	e, err := guard.Expr(expression)
	if err != nil {
		t.errs = append(t.errs, err)
		return t
	}
	return t.When(e)
}

// Add declares the next transition on the same builder.
func (t *TransitionBuilder) Add(name string) *TransitionBuilder {
	return t.builder.Add(name)
}

// Build returns the underlying domain.Transition.
// This is primarily used by the Builder, but exposed for advanced usage.
func (t *TransitionBuilder) Build() domain.Transition {
	return t.transition
}

// End returns the parent Builder.
func (t *TransitionBuilder) End() *Builder {
	return t.builder
}

// MustBuild builds the whole registry; see Builder.MustBuild.
func (t *TransitionBuilder) MustBuild() *domain.Registry {
	return t.builder.MustBuild()
}
