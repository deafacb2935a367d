/*
Package domain contains the core models of the waymark hypermedia layer.

It defines the resources being represented, the transitions declared for their
types, and the immutable registries that hold those declarations. The package
does no I/O; encoders, href expansion and stores live in their own packages.

# Key Entities

  - Resource: a domain object whose representation advertises transitions.
  - Transition: a guarded state change exposed as a link (rel, href, method).
  - Registry: the ordered, immutable set of transitions declared for a kind.
  - TransitionRef: either a transition name or an already resolved Transition.
  - Record: a data-driven Resource (kind, id, attributes) bound to a Catalog.
*/
package domain
