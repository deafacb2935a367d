package guard_test

import (
	"errors"
	"testing"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/aretw0/waymark/pkg/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldIn(t *testing.T) {
	g := guard.FieldIn("state", "draft", "review")

	ok, err := g.Allow(post{State: "review"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Allow(post{State: "published"})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = guard.FieldIn("owner", "me").Allow(post{})
	assert.ErrorContains(t, err, "not present")
}

func TestFieldIn_Numbers(t *testing.T) {
	ok, err := guard.FieldIn("comments", 3, 5).Allow(post{Comments: 5})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.FieldIn("comments", "5").Allow(post{Comments: 5})
	require.NoError(t, err)
	assert.False(t, ok, "strings never match numbers")

	ok, err = guard.FieldIn("id", int64(9007199254740993)).Allow(post{ID: 9007199254740993})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.FieldIn("id", int64(9007199254740992)).Allow(post{ID: 9007199254740993})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCombinators(t *testing.T) {
	yes := domain.GuardFunc(func(domain.Resource) (bool, error) { return true, nil })
	no := domain.GuardFunc(func(domain.Resource) (bool, error) { return false, nil })
	boom := domain.GuardFunc(func(domain.Resource) (bool, error) { return false, errors.New("boom") })

	cases := []struct {
		name    string
		guard   domain.Guard
		want    bool
		wantErr bool
	}{
		{"all true", guard.All(yes, yes), true, false},
		{"all one false", guard.All(yes, no), false, false},
		{"all empty", guard.All(), true, false},
		{"all stops at false", guard.All(no, boom), false, false},
		{"any one true", guard.Any(no, yes), true, false},
		{"any none", guard.Any(no, no), false, false},
		{"any error", guard.Any(no, boom), false, true},
		{"not", guard.Not(no), true, false},
		{"not error", guard.Not(boom), false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := tc.guard.Allow(post{})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}
