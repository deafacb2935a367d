package registry

import (
	"testing"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuards_RegisterAndLookup(t *testing.T) {
	g := NewGuards()
	g.RegisterFunc("always", func(domain.Resource) (bool, error) { return true, nil })

	guard, err := g.Lookup("always")
	require.NoError(t, err)

	ok, err := guard.Allow(nil)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = g.Lookup("never")
	assert.ErrorContains(t, err, "guard not found: never")
}

func TestGuards_Overwrite(t *testing.T) {
	g := NewGuards()
	g.RegisterFunc("flag", func(domain.Resource) (bool, error) { return true, nil })
	g.RegisterFunc("flag", func(domain.Resource) (bool, error) { return false, nil })

	guard, err := g.Lookup("flag")
	require.NoError(t, err)
	ok, _ := guard.Allow(nil)
	assert.False(t, ok)
	assert.Equal(t, []string{"flag"}, g.Names())
}
