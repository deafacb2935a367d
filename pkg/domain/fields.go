package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields is the ordered set of base fields of a representation.
type Fields = orderedmap.OrderedMap[string, any]

// FieldsOf extracts the base fields of r through its JSON form, so struct
// tags and custom marshalers decide names and order. The top-level value must
// encode as a JSON object. Numbers, nested ones included, are kept as
// json.Number so integers beyond 2^53 survive unchanged.
func FieldsOf(r Resource) (*Fields, error) {
	if r == nil {
		return nil, fmt.Errorf("nil resource")
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource fields: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("resource %T does not encode as an object", r)
	}
	fields, err := decodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode resource fields: %w", err)
	}
	return fields, nil
}

func decodeFields(raw []byte) (*Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	fields := orderedmap.New[string, any]()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

// FieldMap flattens the top level of fields into a plain map, which is what
// guard expressions and href templates are evaluated against.
func FieldMap(fields *Fields) map[string]any {
	out := make(map[string]any, fields.Len())
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}
