/*
Package dsl provides a fluent Go DSL for declaring the transitions of a
resource type.

A registry is declared once, typically in a package-level variable, and shared
by every instance of the type:

	package articles

	import (
		"github.com/aretw0/waymark/pkg/domain"
		"github.com/aretw0/waymark/pkg/dsl"
	)

	var transitions = dsl.New("article").
		Add("publish").If(`state == "draft"`).Href("/articles/{id}/publish").Method("POST").
		Add("archive").If(`state == "published"`).Href("/articles/{id}/archive").Method("POST").
		Add("self").Href("/articles/{id}").
		MustBuild()

	type Article struct {
		ID    int    `json:"id"`
		State string `json:"state"`
	}

	func (Article) Transitions() *domain.Registry { return transitions }

Href templates and guard expressions are validated by Build, which reports
every problem at once.
*/
package dsl
