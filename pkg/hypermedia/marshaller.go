package hypermedia

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/waymark/pkg/codec"
	"github.com/aretw0/waymark/pkg/domain"
	"github.com/aretw0/waymark/pkg/resolver"
)

// Marshaller is the serialization entry point: it produces representations
// enriched with a link for every transition currently permitted.
// It is safe for concurrent use once configured.
type Marshaller struct {
	resolver    *resolver.Resolver
	renderer    Renderer
	serializers map[codec.Format]codec.Serializer
	hooks       Hooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Marshaller.
type Option func(*Marshaller)

// WithResolver replaces the default transition resolver.
func WithResolver(r *resolver.Resolver) Option {
	return func(m *Marshaller) {
		m.resolver = r
	}
}

// WithSerializer registers (or replaces) the base serializer of its format.
func WithSerializer(s codec.Serializer) Option {
	return func(m *Marshaller) {
		m.serializers[s.Format()] = s
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(m *Marshaller) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Marshaller) {
		m.logger = logger
	}
}

// NewMarshaller creates a Marshaller with the JSON, XML and YAML serializers.
func NewMarshaller(opts ...Option) *Marshaller {
	m := &Marshaller{
		serializers: codec.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.resolver == nil {
		m.resolver = resolver.New(resolver.WithLogger(m.logger))
	}
	return m
}

// Marshal returns the representation of res in format.
func (m *Marshaller) Marshal(res domain.Resource, format codec.Format, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.marshal(&buf, res, format, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes the representation of res to w. Nothing is written when the
// call fails.
func (m *Marshaller) Write(w io.Writer, res domain.Resource, format codec.Format, opts Options) error {
	var buf bytes.Buffer
	if err := m.marshal(&buf, res, format, opts); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// MediaType returns the media type served for format.
func (m *Marshaller) MediaType(format codec.Format) (string, error) {
	s, err := m.serializer(format)
	if err != nil {
		return "", err
	}
	return s.MediaType(), nil
}

func (m *Marshaller) serializer(format codec.Format) (codec.Serializer, error) {
	s, ok := m.serializers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", codec.ErrUnsupportedFormat, format)
	}
	return s, nil
}

func (m *Marshaller) marshal(buf *bytes.Buffer, res domain.Resource, format codec.Format, opts Options) (err error) {
	event := &RenderEvent{Format: format}
	defer func() {
		if err != nil {
			event.Outcome = OutcomeFailed
			event.Err = err
			m.logger.Debug("representation failed", "kind", event.Kind, "format", format, "err", err)
		}
		if m.hooks.OnRender != nil {
			m.hooks.OnRender(event)
		}
	}()

	s, err := m.serializer(format)
	if err != nil {
		return err
	}

	if res != nil {
		event.Kind = res.Transitions().Kind()
	}
	transitions, err := m.resolver.Resolve(res)
	if err != nil {
		return err
	}

	if len(transitions) == 0 || opts.Controller == nil {
		event.Outcome = OutcomeNoTransitions
		if len(transitions) > 0 {
			event.Outcome = OutcomeNoController
		}
		m.logger.Debug("plain representation", "kind", event.Kind, "format", format, "outcome", event.Outcome)
		return s.Serialize(buf, res, opts.Options, nil)
	}

	linked := opts
	linked.SkipTypes = true
	refs := domain.RefsOf(transitions)

	err = s.Serialize(buf, res, linked.Options, func(doc codec.Document) error {
		if err := m.renderer.RenderAll(refs, res, doc, linked); err != nil {
			return err
		}
		if lister, ok := doc.(codec.StateLister); ok {
			names := make([]string, len(transitions))
			for i, t := range transitions {
				names[i] = t.Name
			}
			return lister.SetFollowingStates(names)
		}
		return nil
	})
	if err != nil {
		return err
	}

	event.Outcome = OutcomeLinked
	event.Links = len(transitions)
	return nil
}
