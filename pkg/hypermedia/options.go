package hypermedia

import "github.com/aretw0/waymark/pkg/codec"

// Options configure a single Marshal call.
type Options struct {
	codec.Options

	// Controller computes hrefs. Without it, link rendering is skipped and
	// the plain representation is produced.
	Controller Controller
}

// Outcome classifies how a Marshal call ended.
type Outcome string

const (
	// OutcomeLinked means links were embedded.
	OutcomeLinked Outcome = "linked"
	// OutcomeNoTransitions means no transition applied; plain representation.
	OutcomeNoTransitions Outcome = "no_transitions"
	// OutcomeNoController means transitions applied but no controller was
	// supplied; plain representation.
	OutcomeNoController Outcome = "no_controller"
	// OutcomeFailed means no representation was produced.
	OutcomeFailed Outcome = "failed"
)

// RenderEvent describes a finished Marshal call.
type RenderEvent struct {
	Kind    string
	Format  codec.Format
	Outcome Outcome
	Links   int
	Err     error
}

// Hooks observe Marshal calls. Hooks must not modify the event.
type Hooks struct {
	OnRender func(e *RenderEvent)
}
