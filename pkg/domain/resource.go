package domain

// Resource is a domain object whose representation carries transition links.
//
// Transitions returns the registry declared for the resource's type. Every
// instance of a type returns the same registry; a nil registry means the type
// declares no transitions.
type Resource interface {
	Transitions() *Registry
}
