package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/waymark/internal/testutils"
	"github.com/aretw0/waymark/pkg/domain"
	"github.com/aretw0/waymark/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecords(t *testing.T) {
	hasCarrier := func(r domain.Resource) (bool, error) {
		if _, ok := r.(*domain.Record).Attributes["carrier"]; !ok {
			return false, errors.New("carrier unknown")
		}
		return true, nil
	}
	reg := dsl.New("order").
		Add("cancel").If(`status != "shipped"`).Href("/orders/{id}/cancel").Method("DELETE").
		Add("track").WhenFunc(hasCarrier).Href("/track/{carrier}/{id}").
		MustBuild()
	cat, err := domain.NewCatalog(reg)
	require.NoError(t, err)

	// Scenario A: valid records
	valid := []*domain.Record{
		domain.NewRecord("order", "1", map[string]any{"status": "open", "carrier": "ups"}),
		domain.NewRecord("order", "2", map[string]any{"status": "shipped", "carrier": "dhl"}),
	}
	assert.NoError(t, ValidateRecords(cat, valid))

	// Scenario B: every kind of problem
	invalid := []*domain.Record{
		domain.NewRecord("order", "1", map[string]any{"status": "open", "carrier": "ups"}),
		domain.NewRecord("order", "1", map[string]any{"status": "open"}),
		domain.NewRecord("invoice", "7", nil),
		domain.NewRecord("order", "3", map[string]any{"status": "open"}),
	}
	err = ValidateRecords(cat, invalid)
	require.Error(t, err)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "found 4 errors"), msg)
	assert.Contains(t, msg, "Duplicate record: 'order/1'")
	assert.Contains(t, msg, "Undeclared kind for 'invoice/7'")
	assert.Contains(t, msg, "Guard of 'track' fails on 'order/3'")
	assert.Contains(t, msg, "Href of 'track' needs 'carrier', missing on 'order/3'")
}

func TestValidateRecords_ExpressionErrors(t *testing.T) {
	cat := testutils.ParseCatalog(t, `
resources:
  - kind: article
    transitions:
      - name: publish
        href: /articles/{id}/publish
        when: views > 10
`)

	// A string compared with a number cannot be evaluated.
	err := ValidateRecords(cat, []*domain.Record{
		domain.NewRecord("article", "1", map[string]any{"views": "many"}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Guard of 'publish' fails on 'article/1'")

	assert.NoError(t, ValidateRecords(cat, []*domain.Record{
		domain.NewRecord("article", "2", map[string]any{"views": 3}),
	}))
}
