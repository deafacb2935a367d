package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/waymark"
	"github.com/aretw0/waymark/pkg/codec"
	"github.com/aretw0/waymark/pkg/domain"
	"github.com/aretw0/waymark/pkg/hypermedia"
	"github.com/aretw0/waymark/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/yosida95/uritemplate/v3"
)

var itemTemplate = uritemplate.MustNew("/{kind}/{id}")

// Engine defines what the server needs from the waymark core.
type Engine interface {
	Catalog() *domain.Catalog
	Bind(rec *domain.Record) (*domain.Record, error)
	Write(w io.Writer, res domain.Resource, format codec.Format, opts hypermedia.Options) error
	MediaType(format codec.Format) (string, error)
}

// Server serves stored records with their hypermedia links.
type Server struct {
	Engine Engine
	Store  ports.ResourceStore

	metrics       http.Handler
	defaultFormat codec.Format
	baseURL       string
	logger        *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithDefaultFormat sets the format used when the client states no preference.
func WithDefaultFormat(f codec.Format) Option {
	return func(s *Server) {
		s.defaultFormat = f
	}
}

// WithBaseURL fixes the base of generated hrefs. By default it is derived
// from the request (scheme, Host, X-Forwarded-Proto).
func WithBaseURL(u string) Option {
	return func(s *Server) {
		s.baseURL = u
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, store ports.ResourceStore, opts ...Option) http.Handler {
	server := &Server{
		Engine:        engine,
		Store:         store,
		defaultFormat: codec.JSON,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}
	r.Get("/{kind}", server.ListResources)
	r.Get("/{kind}/{id}", server.GetResource)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetResource handles the GET /{kind}/{id} request.
//
// The representation format is taken from ?format= when present, else
// negotiated from Accept. ?links=false serves the plain representation.
func (s *Server) GetResource(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")

	format, ok := s.format(r)
	if !ok {
		http.Error(w, "No acceptable representation", http.StatusNotAcceptable)
		return
	}

	rec, err := s.Store.Load(r.Context(), kind, id)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			http.Error(w, fmt.Sprintf("%s %q not found", kind, id), http.StatusNotFound)
			return
		}
		http.Error(w, "Load error", http.StatusInternalServerError)
		s.logger.Error("GetResource: load failed", "kind", kind, "id", id, "error", err)
		return
	}

	bound, err := s.Engine.Bind(rec)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownKind) {
			http.Error(w, fmt.Sprintf("Unknown kind %q", kind), http.StatusNotFound)
			return
		}
		http.Error(w, "Bind error", http.StatusInternalServerError)
		s.logger.Error("GetResource: bind failed", "kind", kind, "id", id, "error", err)
		return
	}

	opts := hypermedia.Options{}
	if withLinks(r) {
		ctrl, err := hypermedia.NewTemplateController(s.base(r))
		if err != nil {
			http.Error(w, "Invalid base URL", http.StatusInternalServerError)
			s.logger.Error("GetResource: controller failed", "error", err)
			return
		}
		opts.Controller = ctrl
	}

	var body strings.Builder
	if err := s.Engine.Write(&body, bound, format, opts); err != nil {
		http.Error(w, "Render error", http.StatusInternalServerError)
		s.logger.Error("GetResource: render failed", "kind", kind, "id", id, "format", format, "error", err)
		return
	}

	mediaType, err := s.Engine.MediaType(format)
	if err != nil {
		mediaType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Vary", "Accept")
	_, _ = io.WriteString(w, body.String())
}

// ListResources handles the GET /{kind} request.
func (s *Server) ListResources(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	if _, ok := s.Engine.Catalog().Registry(kind); !ok {
		http.Error(w, fmt.Sprintf("Unknown kind %q", kind), http.StatusNotFound)
		return
	}

	ids, err := s.Store.List(r.Context(), kind)
	if err != nil {
		http.Error(w, "List error", http.StatusInternalServerError)
		s.logger.Error("ListResources: list failed", "kind", kind, "error", err)
		return
	}

	base := strings.TrimSuffix(s.base(r), "/")
	items := make([]domain.Link, 0, len(ids))
	for _, id := range ids {
		values := uritemplate.Values{}
		values.Set("kind", uritemplate.String(kind))
		values.Set("id", uritemplate.String(id))
		path, err := itemTemplate.Expand(values)
		if err != nil {
			http.Error(w, "List error", http.StatusInternalServerError)
			s.logger.Error("ListResources: item href failed", "kind", kind, "id", id, "error", err)
			return
		}
		items = append(items, domain.Link{Rel: "item", Href: base + path, Method: http.MethodGet})
	}

	resp := struct {
		Kind  string        `json:"kind"`
		Count int           `json:"count"`
		Link  []domain.Link `json:"link"`
	}{Kind: kind, Count: len(ids), Link: items}

	s.writeJSON(w, "ListResources", resp)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, "GetHealth", map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"app":     "waymark-http",
		"version": strings.TrimSpace(waymark.Version),
	}
	s.writeJSON(w, "GetInfo", resp)
}

// -- Helpers --

func (s *Server) writeJSON(w http.ResponseWriter, handler string, resp any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error(handler+" response encode failed", "error", err)
	}
}

func (s *Server) format(r *http.Request) (codec.Format, bool) {
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := codec.ParseFormat(q)
		return f, err == nil
	}
	return codec.Negotiate(r.Header.Get("Accept"), s.defaultFormat)
}

func (s *Server) base(r *http.Request) string {
	if s.baseURL != "" {
		return s.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func withLinks(r *http.Request) bool {
	v := r.URL.Query().Get("links")
	if v == "" {
		return true
	}
	on, err := strconv.ParseBool(v)
	return err != nil || on
}
