package domain

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is a Resource described by data rather than by a Go type.
// Its representation is the id followed by the attributes in key order.
type Record struct {
	Kind       string         `json:"kind" yaml:"kind" mapstructure:"kind"`
	ID         string         `json:"id" yaml:"id" mapstructure:"id"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`

	registry *Registry
}

// NewRecord creates an unbound record.
func NewRecord(kind, id string, attributes map[string]any) *Record {
	if attributes == nil {
		attributes = make(map[string]any)
	}
	return &Record{Kind: kind, ID: id, Attributes: attributes}
}

// DecodeRecord builds a record from a generic map, as produced by YAML or
// JSON decoders. Unknown top-level keys are rejected.
func DecodeRecord(raw map[string]any) (*Record, error) {
	var rec Record
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &rec,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if rec.Attributes == nil {
		rec.Attributes = make(map[string]any)
	}
	return &rec, nil
}

// Validate checks that the record can be addressed.
func (r *Record) Validate() error {
	switch {
	case r == nil:
		return fmt.Errorf("invalid record: nil")
	case r.Kind == "":
		return fmt.Errorf("invalid record: kind is required")
	case r.ID == "":
		return fmt.Errorf("invalid record: id is required")
	}
	return nil
}

// Transitions implements Resource.
func (r *Record) Transitions() *Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WithRegistry returns a shallow copy of r bound to reg.
func (r *Record) WithRegistry(reg *Registry) *Record {
	next := *r
	next.registry = reg
	return &next
}

// Clone returns a copy of r whose attribute map can be mutated freely.
func (r *Record) Clone() *Record {
	next := *r
	next.Attributes = make(map[string]any, len(r.Attributes))
	for k, v := range r.Attributes {
		next.Attributes[k] = v
	}
	return &next
}

// MarshalJSON renders the record as its representation fields: "id" first,
// then the attributes sorted by key. Kind is not part of the representation.
func (r *Record) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, any]()
	om.Set("id", r.ID)

	keys := make([]string, 0, len(r.Attributes))
	for k := range r.Attributes {
		if k == "id" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		om.Set(k, r.Attributes[k])
	}
	return om.MarshalJSON()
}
