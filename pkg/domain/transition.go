package domain

// Guard decides whether a transition is applicable given the resource's
// current state. Guards must not mutate the resource.
type Guard interface {
	Allow(r Resource) (bool, error)
}

// GuardFunc adapts a plain function to the Guard interface.
type GuardFunc func(r Resource) (bool, error)

// Allow calls f(r).
func (f GuardFunc) Allow(r Resource) (bool, error) {
	return f(r)
}

// Transition is a state change declared on a resource type.
type Transition struct {
	// Name identifies the transition inside its registry.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Rel is the link relation. Defaults to Name when empty.
	Rel string `json:"rel,omitempty" yaml:"rel,omitempty" mapstructure:"rel"`

	// Href is an RFC 6570 URI template expanded against the resource fields,
	// e.g. "/articles/{id}/publish".
	Href string `json:"href" yaml:"href" mapstructure:"href"`

	// Method is the HTTP method used to follow the link. Optional.
	Method string `json:"method,omitempty" yaml:"method,omitempty" mapstructure:"method"`

	// Guard must pass for the transition to be applicable.
	// A nil Guard means the transition is always applicable.
	Guard Guard `json:"-" yaml:"-" mapstructure:"-"`
}

// Relation returns the link relation for the transition.
func (t Transition) Relation() string {
	if t.Rel == "" {
		return t.Name
	}
	return t.Rel
}

// Allow evaluates the guard of the transition against r.
func (t Transition) Allow(r Resource) (bool, error) {
	if t.Guard == nil {
		return true, nil
	}
	return t.Guard.Allow(r)
}

// Link is a rendered transition: what ends up in the representation.
type Link struct {
	Rel    string `json:"rel" yaml:"rel" xml:"rel,attr"`
	Href   string `json:"href" yaml:"href" xml:"href,attr"`
	Method string `json:"method,omitempty" yaml:"method,omitempty" xml:"method,attr,omitempty"`
}

// TransitionRef points at a transition either by name or by value.
// Names are looked up in a Registry when resolved.
type TransitionRef struct {
	name       string
	transition *Transition
}

// ByName references a transition declared in the resource type registry.
func ByName(name string) TransitionRef {
	return TransitionRef{name: name}
}

// Resolved wraps a transition that is already known.
func Resolved(t Transition) TransitionRef {
	return TransitionRef{name: t.Name, transition: &t}
}

// RefsOf wraps each transition as a resolved reference, preserving order.
func RefsOf(transitions []Transition) []TransitionRef {
	refs := make([]TransitionRef, len(transitions))
	for i, t := range transitions {
		refs[i] = Resolved(t)
	}
	return refs
}

// Name returns the referenced transition name.
func (ref TransitionRef) Name() string {
	return ref.name
}

// IsResolved reports whether the reference already carries a Transition.
func (ref TransitionRef) IsResolved() bool {
	return ref.transition != nil
}

// Resolve returns the referenced transition, looking it up in reg when the
// reference is symbolic. Unknown names yield an *UnknownTransitionError.
func (ref TransitionRef) Resolve(reg *Registry) (Transition, error) {
	if ref.transition != nil {
		return *ref.transition, nil
	}
	return reg.Lookup(ref.name)
}

func (ref TransitionRef) String() string {
	return ref.name
}
