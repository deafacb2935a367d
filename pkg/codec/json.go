package codec

import (
	"encoding/json"
	"io"

	"github.com/aretw0/waymark/pkg/domain"
)

// JSONSerializer renders resources as JSON objects. Links are emitted as an
// array under "link", followed by "following_states" when requested.
type JSONSerializer struct{}

func (JSONSerializer) Format() Format    { return JSON }
func (JSONSerializer) MediaType() string { return "application/json" }

func (JSONSerializer) Serialize(w io.Writer, r domain.Resource, opts Options, hook Hook) error {
	fields, err := buildObject(r, hook)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}
	return enc.Encode(fields)
}
