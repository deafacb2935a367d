/*
Package codec contains the base serializers that turn a resource's fields
into a JSON, XML or YAML document.

Serializers know nothing about transitions. They expose a single extension
point: an optional Hook, invoked once the base fields are written and before
the document is closed, which receives a Document to append link entries to.
The hypermedia package uses that hook to embed transition links.
*/
package codec
