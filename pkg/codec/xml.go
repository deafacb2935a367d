package codec

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/waymark/pkg/domain"
)

// XMLSerializer renders resources as an element tree. Scalar fields carry a
// "type" attribute (integer, float, boolean, array) unless Options.SkipTypes
// is set; null fields carry nil="true". Links are <link rel href method/>
// children written after the base fields.
type XMLSerializer struct{}

func (XMLSerializer) Format() Format    { return XML }
func (XMLSerializer) MediaType() string { return "application/xml" }

func (XMLSerializer) Serialize(w io.Writer, r domain.Resource, opts Options, hook Hook) error {
	fields, err := domain.FieldsOf(r)
	if err != nil {
		return err
	}

	root := opts.Root
	if root == "" {
		root = r.Transitions().Kind()
	}
	if root == "" {
		root = "resource"
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	if opts.Indent != "" {
		enc.Indent("", opts.Indent)
	}

	start := xml.StartElement{Name: xml.Name{Local: elementName(root)}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	doc := &xmlDocument{enc: enc, fields: make(map[string]string, fields.Len())}
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		if err := writeValue(enc, pair.Key, pair.Value, opts); err != nil {
			return fmt.Errorf("field %q: %w", pair.Key, err)
		}
		doc.fields[strings.ToLower(elementName(pair.Key))] = pair.Key
	}
	if hook != nil {
		if err := hook(doc); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return err
	}
	return enc.Flush()
}

// xmlDocument writes links straight into the encoder, at the current
// position inside the root element. fields maps emitted element names,
// lowercased, back to the field names they came from.
type xmlDocument struct {
	enc    *xml.Encoder
	fields map[string]string
}

func (d *xmlDocument) AddLink(link domain.Link) error {
	if field, exists := d.fields[LinkKey]; exists {
		return fmt.Errorf("%w: %q", ErrFieldCollision, field)
	}
	return d.enc.EncodeElement(link, xml.StartElement{Name: xml.Name{Local: "link"}})
}

func writeValue(enc *xml.Encoder, name string, v any, opts Options) error {
	el := xml.StartElement{Name: xml.Name{Local: elementName(name)}}

	var text string
	switch val := v.(type) {
	case nil:
		el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: "nil"}, Value: "true"})
	case string:
		text = val
	case bool:
		el.Attr = typeAttr(el.Attr, "boolean", opts)
		text = strconv.FormatBool(val)
	case json.Number:
		text = val.String()
		if strings.ContainsAny(text, ".eE") {
			el.Attr = typeAttr(el.Attr, "float", opts)
		} else {
			el.Attr = typeAttr(el.Attr, "integer", opts)
		}
	case []any:
		el.Attr = typeAttr(el.Attr, "array", opts)
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		for _, item := range val {
			if err := writeValue(enc, "item", item, opts); err != nil {
				return err
			}
		}
		return enc.EncodeToken(el.End())
	case map[string]any:
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := writeValue(enc, k, val[k], opts); err != nil {
				return err
			}
		}
		return enc.EncodeToken(el.End())
	default:
		text = fmt.Sprint(val)
	}

	if err := enc.EncodeToken(el); err != nil {
		return err
	}
	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(el.End())
}

func typeAttr(attrs []xml.Attr, typ string, opts Options) []xml.Attr {
	if opts.SkipTypes {
		return attrs
	}
	return append(attrs, xml.Attr{Name: xml.Name{Local: "type"}, Value: typ})
}

// elementName turns a field name into a valid XML name: underscores become
// dashes and any other invalid character is dropped.
func elementName(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_':
			if b.Len() > 0 {
				b.WriteRune('-')
			}
		case unicode.IsLetter(r), r == '-' && i > 0, r == '.' && i > 0, unicode.IsDigit(r) && i > 0:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "field"
	}
	return b.String()
}
