package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/aretw0/waymark/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogMarkdown(t *testing.T) {
	article := dsl.New("article").
		Add("publish").If(`state == "draft"`).Href("/articles/{id}/publish").Method("POST").
		Add("self").Href("/articles/{id}").
		Add("check").WhenFunc(func(domain.Resource) (bool, error) { return true, nil }).Rel("a|b").Href("/c").
		MustBuild()
	empty := domain.MustRegistry("comment")

	cat, err := domain.NewCatalog(article, empty)
	require.NoError(t, err)

	md := CatalogMarkdown(cat)
	assert.Contains(t, md, "## article")
	assert.Contains(t, md, "| publish | publish | POST | `/articles/{id}/publish` | `state == \"draft\"` |")
	assert.Contains(t, md, "| self | self | - | `/articles/{id}` | _always_ |")
	assert.Contains(t, md, `| check | a\|b | - | `+"`/c`"+` | _func_ |`)
	assert.Contains(t, md, "## comment\n\n_No transitions._")
}

func TestCatalogMarkdown_Empty(t *testing.T) {
	cat, err := domain.NewCatalog()
	require.NoError(t, err)
	assert.Contains(t, CatalogMarkdown(cat), "No resource kinds declared")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}
