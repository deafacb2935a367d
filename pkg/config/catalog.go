package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/aretw0/waymark/pkg/dsl"
	"github.com/aretw0/waymark/pkg/registry"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// CatalogFile is the decoded form of a catalog file.
type CatalogFile struct {
	Resources []ResourceDeclaration `mapstructure:"resources"`
}

// ResourceDeclaration declares one resource kind.
type ResourceDeclaration struct {
	Kind        string                  `mapstructure:"kind"`
	Transitions []TransitionDeclaration `mapstructure:"transitions"`
}

// TransitionDeclaration declares one transition. At most one of When (an
// expression) and Guard (a named guard) may be set.
type TransitionDeclaration struct {
	Name   string `mapstructure:"name"`
	Rel    string `mapstructure:"rel"`
	Href   string `mapstructure:"href"`
	Method string `mapstructure:"method"`
	When   string `mapstructure:"when"`
	Guard  string `mapstructure:"guard"`
}

// LoadCatalog reads a catalog file. Named guards are looked up in guards,
// which may be nil when the file only uses expressions.
func LoadCatalog(path string, guards *registry.Guards) (*domain.Catalog, error) {
	raw, err := readDocument(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return DecodeCatalog(raw, guards)
}

// ParseCatalog decodes catalog data in YAML (a superset of JSON).
func ParseCatalog(data []byte, guards *registry.Guards) (*domain.Catalog, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return DecodeCatalog(raw, guards)
}

// DecodeCatalog builds a catalog from generic data. Every declaration
// problem is reported in a single error.
func DecodeCatalog(raw map[string]any, guards *registry.Guards) (*domain.Catalog, error) {
	var file CatalogFile
	if err := decodeStrict(raw, &file); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	var result *multierror.Error
	registries := make([]*domain.Registry, 0, len(file.Resources))

	for i, decl := range file.Resources {
		if decl.Kind == "" {
			result = multierror.Append(result, fmt.Errorf("resources[%d]: kind is required", i))
			continue
		}
		reg, err := buildRegistry(decl, guards)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		registries = append(registries, reg)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return domain.NewCatalog(registries...)
}

func buildRegistry(decl ResourceDeclaration, guards *registry.Guards) (*domain.Registry, error) {
	b := dsl.New(decl.Kind)
	var result *multierror.Error
	seen := make(map[string]bool, len(decl.Transitions))

	for _, td := range decl.Transitions {
		if td.Name == "" {
			result = multierror.Append(result, fmt.Errorf("%s: transition name is required", decl.Kind))
			continue
		}
		if seen[td.Name] {
			result = multierror.Append(result, fmt.Errorf("%s.%s: transition declared twice", decl.Kind, td.Name))
			continue
		}
		seen[td.Name] = true

		tb := b.Add(td.Name).Rel(td.Rel).Href(td.Href).Method(strings.ToUpper(td.Method))

		switch {
		case td.When != "" && td.Guard != "":
			result = multierror.Append(result, fmt.Errorf("%s.%s: 'when' and 'guard' are mutually exclusive", decl.Kind, td.Name))
		case td.When != "":
			tb.If(td.When)
		case td.Guard != "":
			if guards == nil {
				result = multierror.Append(result, fmt.Errorf("%s.%s: named guard '%s' used but no guards are registered", decl.Kind, td.Name, td.Guard))
				continue
			}
			g, err := guards.Lookup(td.Guard)
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("%s.%s: %w", decl.Kind, td.Name, err))
				continue
			}
			tb.When(g)
		}
	}

	reg, err := b.Build()
	if err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return reg, nil
}

func decodeStrict(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// readDocument loads a YAML or JSON file into a generic map.
func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return raw, nil
}
