package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/waymark"
	"github.com/aretw0/waymark/internal/metrics"
	"github.com/aretw0/waymark/pkg/config"
	"github.com/aretw0/waymark/pkg/domain"
	"github.com/aretw0/waymark/pkg/hypermedia"
	"github.com/aretw0/waymark/pkg/registry"
)

// EngineOptions configures CreateEngine.
type EngineOptions struct {
	// CatalogPath is the catalog file. When empty, the conventional names
	// are searched in Dir.
	CatalogPath string
	Dir         string
	Debug       bool
	Metrics     *metrics.Recorder
}

// catalogNames are tried in order when no catalog path is given.
var catalogNames = []string{"catalog.yaml", "catalog.yml", "catalog.json", "waymark.yaml"}

// CreateEngine loads the catalog and initializes an engine with standard
// CLI conventions.
func CreateEngine(opts EngineOptions, logger *slog.Logger) (*waymark.Engine, error) {
	path, err := ResolveCatalogPath(opts.CatalogPath, opts.Dir)
	if err != nil {
		return nil, err
	}

	catalog, err := config.LoadCatalog(path, BuiltinGuards())
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	logger.Debug("catalog loaded", "path", path, "kinds", catalog.Kinds())

	engineOpts := []waymark.Option{waymark.WithLogger(logger)}
	if opts.Debug {
		engineOpts = append(engineOpts, waymark.WithHooks(createDebugHooks(logger)))
	}
	if opts.Metrics != nil {
		engineOpts = append(engineOpts, waymark.WithHooks(opts.Metrics.Hooks()))
	}

	return waymark.New(catalog, engineOpts...), nil
}

// ResolveCatalogPath returns explicit when set, else the first conventional
// catalog file found in dir.
func ResolveCatalogPath(explicit, dir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if dir == "" {
		dir = "."
	}
	for _, name := range catalogNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no catalog found in %s (tried %v); use --catalog", dir, catalogNames)
}

// BuiltinGuards returns the named guards every catalog may reference.
func BuiltinGuards() *registry.Guards {
	g := registry.NewGuards()
	g.RegisterFunc("always", func(domain.Resource) (bool, error) { return true, nil })
	g.RegisterFunc("never", func(domain.Resource) (bool, error) { return false, nil })
	return g
}

func createDebugHooks(logger *slog.Logger) hypermedia.Hooks {
	return hypermedia.Hooks{
		OnRender: func(e *hypermedia.RenderEvent) {
			attrs := []any{"kind", e.Kind, "format", e.Format, "outcome", e.Outcome, "links", e.Links}
			if e.Err != nil {
				logger.Debug("render", append(attrs, "error", e.Err)...)
				return
			}
			logger.Debug("render", attrs...)
		},
	}
}
