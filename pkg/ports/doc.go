/*
Package ports defines the driven ports (interfaces) of waymark.

These interfaces decouple the hypermedia core from external implementations,
so the HTTP adapter and the CLI can serve records from any storage backend.

# Key Interfaces

  - ResourceStore: persists and loads domain.Record values by kind and id.
*/
package ports
