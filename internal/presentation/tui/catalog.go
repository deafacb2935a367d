package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/waymark/pkg/domain"
)

// CatalogMarkdown describes every kind of the catalog as a Markdown section
// with one table row per transition, in declaration order.
func CatalogMarkdown(cat *domain.Catalog) string {
	var b strings.Builder
	b.WriteString("# Catalog\n\n")

	kinds := cat.Kinds()
	if len(kinds) == 0 {
		b.WriteString("_No resource kinds declared._\n")
		return b.String()
	}

	for _, kind := range kinds {
		reg, _ := cat.Registry(kind)
		fmt.Fprintf(&b, "## %s\n\n", kind)

		declared := reg.Declared()
		if len(declared) == 0 {
			b.WriteString("_No transitions._\n\n")
			continue
		}

		b.WriteString("| Transition | Rel | Method | Href | Guard |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, t := range declared {
			method := t.Method
			if method == "" {
				method = "-"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | `%s` | %s |\n",
				cell(t.Name), cell(t.Relation()), method, t.Href, guardLabel(t.Guard))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func guardLabel(g domain.Guard) string {
	switch v := g.(type) {
	case nil:
		return "_always_"
	case fmt.Stringer:
		return "`" + v.String() + "`"
	default:
		return "_func_"
	}
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
