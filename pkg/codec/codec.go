package codec

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/munnerz/goautoneg"
)

// Format names a representation format.
type Format string

const (
	JSON Format = "json"
	XML  Format = "xml"
	YAML Format = "yaml"
)

// Keys used for link data in object-shaped documents (JSON, YAML).
const (
	LinkKey   = "link"
	StatesKey = "following_states"
)

var (
	// ErrUnsupportedFormat is returned for formats without a serializer.
	ErrUnsupportedFormat = errors.New("unsupported representation format")

	// ErrFieldCollision is returned when link data would replace a base field.
	ErrFieldCollision = errors.New("link data collides with a resource field")
)

// Options configure a single serialization call.
type Options struct {
	// SkipTypes omits per-field type hints (XML "type" attributes).
	// JSON and YAML carry no type hints, so it has no effect there.
	SkipTypes bool

	// Root overrides the XML root element name. Defaults to the resource kind.
	Root string

	// Indent pretty-prints the output with the given indentation.
	Indent string
}

// Document is the in-progress representation handed to a Hook.
// It is owned by a single serialization call.
type Document interface {
	// AddLink appends one link entry after the base fields.
	AddLink(link domain.Link) error
}

// StateLister is implemented by documents that can also list the names of
// the applicable transitions.
type StateLister interface {
	SetFollowingStates(names []string) error
}

// Hook runs after the base fields are written and before the document is
// closed. Returning an error aborts serialization.
type Hook func(doc Document) error

// Serializer writes the base representation of a resource.
type Serializer interface {
	Format() Format
	MediaType() string
	Serialize(w io.Writer, r domain.Resource, opts Options, hook Hook) error
}

// Default returns the built-in serializers.
func Default() map[Format]Serializer {
	return map[Format]Serializer{
		JSON: JSONSerializer{},
		XML:  XMLSerializer{},
		YAML: YAMLSerializer{},
	}
}

// For returns the built-in serializer of format.
func For(format Format) (Serializer, error) {
	s, ok := Default()[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return s, nil
}

// ParseFormat accepts a format name ("json", "xml", "yaml") or a media type.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case JSON, XML, YAML:
		return Format(s), nil
	case "yml":
		return YAML, nil
	}
	if f, ok := FormatFromMediaType(s); ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

var mediaTypes = map[string]Format{
	"application/json":   JSON,
	"text/json":          JSON,
	"application/xml":    XML,
	"text/xml":           XML,
	"application/yaml":   YAML,
	"application/x-yaml": YAML,
	"text/yaml":          YAML,
}

// FormatFromMediaType maps a single media type to a format. Structured
// syntax suffixes such as "application/hal+json" are honored.
func FormatFromMediaType(mediaType string) (Format, bool) {
	accepted := goautoneg.ParseAccept(mediaType)
	if len(accepted) == 0 {
		return "", false
	}
	mt := accepted[0].Type + "/" + accepted[0].SubType
	if f, ok := mediaTypes[mt]; ok {
		return f, true
	}
	switch {
	case strings.HasSuffix(accepted[0].SubType, "+json"):
		return JSON, true
	case strings.HasSuffix(accepted[0].SubType, "+xml"):
		return XML, true
	case strings.HasSuffix(accepted[0].SubType, "+yaml"):
		return YAML, true
	}
	return "", false
}

// Negotiate picks a format from an Accept header, honoring q-values.
// An empty header or "*/*" yields fallback; ok is false when nothing
// acceptable is offered.
func Negotiate(accept string, fallback Format) (Format, bool) {
	if accept == "" {
		return fallback, true
	}
	offers := []string{"application/json", "application/xml", "application/yaml", "text/xml", "text/yaml"}
	if fb, ok := Default()[fallback]; ok {
		offers = append([]string{fb.MediaType()}, offers...)
	}
	chosen := goautoneg.Negotiate(accept, offers)
	if chosen == "" {
		return "", false
	}
	return mediaTypes[chosen], true
}

