package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/waymark/pkg/domain"
	"gopkg.in/yaml.v3"
)

// YAMLSerializer renders resources as YAML mappings, keeping field order.
type YAMLSerializer struct{}

func (YAMLSerializer) Format() Format    { return YAML }
func (YAMLSerializer) MediaType() string { return "application/yaml" }

func (YAMLSerializer) Serialize(w io.Writer, r domain.Resource, opts Options, hook Hook) error {
	fields, err := buildObject(r, hook)
	if err != nil {
		return err
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		value := &yaml.Node{}
		if err := value.Encode(yamlValue(pair.Value)); err != nil {
			return fmt.Errorf("field %q: %w", pair.Key, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
			value,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(indentWidth(opts.Indent))
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

// yamlValue turns json.Number values into plain scalar nodes, so numbers are
// written verbatim instead of as quoted strings.
func yamlValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: val.String()}
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = yamlValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = yamlValue(item)
		}
		return out
	default:
		return v
	}
}

func indentWidth(indent string) int {
	if indent == "" {
		return 2
	}
	width := 0
	for _, c := range indent {
		if c == '\t' {
			width += 4
		} else {
			width++
		}
	}
	return width
}
