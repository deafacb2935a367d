package resolver_test

import (
	"errors"
	"testing"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/aretw0/waymark/pkg/dsl"
	"github.com/aretw0/waymark/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var articleTransitions = dsl.New("article").
	Add("publish").If(`state == "draft"`).Href("/articles/{id}/publish").Method("POST").
	Add("archive").If(`state == "published"`).Href("/articles/{id}/archive").Method("POST").
	Add("self").Href("/articles/{id}").
	MustBuild()

type article struct {
	ID    int    `json:"id"`
	State string `json:"state"`
}

func (*article) Transitions() *domain.Registry { return articleTransitions }

func names(ts []domain.Transition) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

func TestResolve_FiltersInDeclarationOrder(t *testing.T) {
	r := resolver.New()

	got, err := r.Resolve(&article{ID: 1, State: "draft"})
	require.NoError(t, err)
	assert.Equal(t, []string{"publish", "self"}, names(got))
}

func TestResolve_NeverCached(t *testing.T) {
	r := resolver.New()
	a := &article{ID: 1, State: "draft"}

	first, err := r.Resolve(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"publish", "self"}, names(first))

	a.State = "published"
	second, err := r.Resolve(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"archive", "self"}, names(second))
}

type bare struct{}

func (bare) Transitions() *domain.Registry { return nil }

func TestResolve_NoDeclarations(t *testing.T) {
	got, err := resolver.New().Resolve(bare{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

type fragile struct {
	reg *domain.Registry
}

func (f fragile) Transitions() *domain.Registry { return f.reg }

func TestResolve_GuardErrorAborts(t *testing.T) {
	cause := errors.New("database unavailable")
	calls := 0
	reg := domain.MustRegistry("order",
		domain.Transition{Name: "pay", Href: "/pay"},
		domain.Transition{Name: "cancel", Href: "/cancel", Guard: domain.GuardFunc(func(domain.Resource) (bool, error) {
			return false, cause
		})},
		domain.Transition{Name: "ship", Href: "/ship", Guard: domain.GuardFunc(func(domain.Resource) (bool, error) {
			calls++
			return true, nil
		})},
	)

	got, err := resolver.New().Resolve(fragile{reg: reg})
	require.Error(t, err)
	assert.Nil(t, got, "no partial transition list")
	assert.ErrorIs(t, err, domain.ErrGuardEvaluation)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, calls, "resolution stops at the failing guard")

	var gerr *domain.GuardEvaluationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "order", gerr.Kind)
	assert.Equal(t, "cancel", gerr.Transition)
}

func TestResolve_NilResource(t *testing.T) {
	_, err := resolver.New().Resolve(nil)
	assert.Error(t, err)
}
