package hypermedia

import (
	"errors"
	"fmt"

	"github.com/aretw0/waymark/pkg/codec"
	"github.com/aretw0/waymark/pkg/domain"
)

// ErrNoController is returned when links are rendered without a Controller.
var ErrNoController = errors.New("no controller to compute hrefs")

// Renderer writes transition links into a document.
type Renderer struct{}

// Render appends the link of one transition to doc. Symbolic references are
// looked up in the registry of res.
func (Renderer) Render(ref domain.TransitionRef, res domain.Resource, doc codec.Document, opts Options) error {
	if opts.Controller == nil {
		return ErrNoController
	}

	t, err := ref.Resolve(res.Transitions())
	if err != nil {
		return err
	}

	href, err := opts.Controller.Href(t, res)
	if err != nil {
		return fmt.Errorf("href for transition '%s': %w", t.Name, err)
	}

	return doc.AddLink(domain.Link{
		Rel:    t.Relation(),
		Href:   href,
		Method: t.Method,
	})
}

// RenderAll calls Render once per reference, in order, stopping at the first
// error.
func (r Renderer) RenderAll(refs []domain.TransitionRef, res domain.Resource, doc codec.Document, opts Options) error {
	for _, ref := range refs {
		if err := r.Render(ref, res, doc, opts); err != nil {
			return err
		}
	}
	return nil
}
