/*
Package waymark embeds hypermedia links into the serialized representation of
a resource, one link per state transition the resource currently permits
(HATEOAS).

# Concept

A resource type declares its transitions once, in an immutable registry.
Each transition has a guard, a predicate over the resource's own fields,
and link metadata (rel, href template, method). When a resource is
serialized, waymark evaluates the guards, keeps the applicable transitions
and appends them as links after the resource's fields:

	{"id":"1","title":"Hello","state":"draft",
	 "link":[{"rel":"publish","href":"http://api/articles/1/publish","method":"POST"}],
	 "following_states":["publish"]}

Following a link is the host's job; waymark only advertises what is possible.

# Key Features

  - JSON, XML and YAML representations with stable field order.
  - Guards as Go functions, named guards or expressions (state == "draft").
  - Declarative catalogs in YAML (see package config).
  - No partial documents: a failing guard or href produces no output.

# Usage

	reg := dsl.New("article").
		Add("publish").If(`state == "draft"`).Href("/articles/{id}/publish").Method("POST").
		MustBuild()
	catalog, _ := domain.NewCatalog(reg)

	eng := waymark.New(catalog)
	rec, _ := eng.Bind(domain.NewRecord("article", "1", map[string]any{"state": "draft"}))

	ctrl, _ := hypermedia.NewTemplateController("http://api.example.com")
	out, err := eng.Marshal(rec, codec.JSON, hypermedia.Options{Controller: ctrl})

Without a controller, or when no transition applies, the plain
representation is produced.
*/
package waymark
