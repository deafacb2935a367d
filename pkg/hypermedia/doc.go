/*
Package hypermedia embeds transition links into resource representations
(HATEOAS).

A Marshaller asks the resolver which transitions the resource's current state
permits. When there are none, or when the call carries no Controller to
compute hrefs, the resource is serialized exactly as the base serializer
would. Otherwise type hints are switched off and, once the base fields are
written, the Renderer appends one link per transition in declaration order.

	m := hypermedia.NewMarshaller()
	ctrl, _ := hypermedia.NewTemplateController("https://api.example.com")
	out, err := m.Marshal(article, codec.JSON, hypermedia.Options{Controller: ctrl})

Documents are built in memory; a failed call produces no output.
*/
package hypermedia
