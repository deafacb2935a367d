package waymark

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/waymark/pkg/codec"
	"github.com/aretw0/waymark/pkg/domain"
	"github.com/aretw0/waymark/pkg/hypermedia"
	"github.com/aretw0/waymark/pkg/resolver"
)

// Version is the waymark release. Overridden at build time with
// -ldflags "-X github.com/aretw0/waymark.Version=...".
var Version = "0.1.0-dev"

// Engine is the high-level entry point for the waymark library.
// It binds records to a catalog and renders resources with their links.
type Engine struct {
	catalog     *domain.Catalog
	marshaller  *hypermedia.Marshaller
	serializers []codec.Serializer
	hooks       []hypermedia.Hooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks. It may be given more than once;
// hooks run in registration order.
func WithHooks(hooks hypermedia.Hooks) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks)
	}
}

// WithSerializer replaces or adds the serializer of a format.
func WithSerializer(s codec.Serializer) Option {
	return func(e *Engine) {
		e.serializers = append(e.serializers, s)
	}
}

// New initializes a new Engine over catalog. A nil catalog is allowed for
// hosts that only render their own Resource types.
func New(catalog *domain.Catalog, opts ...Option) *Engine {
	eng := &Engine{
		catalog: catalog,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(eng)
	}

	mopts := []hypermedia.Option{
		hypermedia.WithLogger(eng.logger),
		hypermedia.WithHooks(chainHooks(eng.hooks)),
		hypermedia.WithResolver(resolver.New(resolver.WithLogger(eng.logger))),
	}
	for _, s := range eng.serializers {
		mopts = append(mopts, hypermedia.WithSerializer(s))
	}
	eng.marshaller = hypermedia.NewMarshaller(mopts...)

	return eng
}

// Catalog returns the catalog the engine binds records against.
func (e *Engine) Catalog() *domain.Catalog {
	return e.catalog
}

// Bind attaches rec to the registry of its kind.
func (e *Engine) Bind(rec *domain.Record) (*domain.Record, error) {
	if rec == nil {
		return nil, fmt.Errorf("catalog: nil record")
	}
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: %s (no catalog loaded)", domain.ErrUnknownKind, rec.Kind)
	}
	return e.catalog.Bind(rec)
}

// Marshal renders res in format, with links when opts carries a controller.
func (e *Engine) Marshal(res domain.Resource, format codec.Format, opts hypermedia.Options) ([]byte, error) {
	return e.marshaller.Marshal(res, format, opts)
}

// Write renders res to w. Nothing is written when rendering fails.
func (e *Engine) Write(w io.Writer, res domain.Resource, format codec.Format, opts hypermedia.Options) error {
	return e.marshaller.Write(w, res, format, opts)
}

// MediaType returns the media type served for format.
func (e *Engine) MediaType(format codec.Format) (string, error) {
	return e.marshaller.MediaType(format)
}

func chainHooks(all []hypermedia.Hooks) hypermedia.Hooks {
	var fns []func(*hypermedia.RenderEvent)
	for _, h := range all {
		if h.OnRender != nil {
			fns = append(fns, h.OnRender)
		}
	}
	if len(fns) == 0 {
		return hypermedia.Hooks{}
	}
	return hypermedia.Hooks{
		OnRender: func(e *hypermedia.RenderEvent) {
			for _, fn := range fns {
				fn(e)
			}
		},
	}
}
