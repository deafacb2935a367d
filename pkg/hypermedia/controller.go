package hypermedia

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/yosida95/uritemplate/v3"
)

// Controller carries the request-scoped routing context needed to turn a
// transition's href template into a concrete href.
type Controller interface {
	Href(t domain.Transition, r domain.Resource) (string, error)
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(t domain.Transition, r domain.Resource) (string, error)

// Href calls f(t, r).
func (f ControllerFunc) Href(t domain.Transition, r domain.Resource) (string, error) {
	return f(t, r)
}

// TemplateController expands RFC 6570 templates with the resource's
// top-level scalar fields and resolves the result against a base URL.
type TemplateController struct {
	base *url.URL
}

// NewTemplateController creates a controller rooted at baseURL. An empty
// baseURL leaves expanded hrefs relative.
func NewTemplateController(baseURL string) (*TemplateController, error) {
	c := &TemplateController{}
	if baseURL == "" {
		return c, nil
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	c.base = u
	return c, nil
}

// Href implements Controller.
func (c *TemplateController) Href(t domain.Transition, r domain.Resource) (string, error) {
	if t.Href == "" {
		return "", fmt.Errorf("transition '%s' has no href template", t.Name)
	}
	tmpl, err := uritemplate.New(t.Href)
	if err != nil {
		return "", fmt.Errorf("transition '%s': invalid href template: %w", t.Name, err)
	}

	fields, err := domain.FieldsOf(r)
	if err != nil {
		return "", err
	}

	values := uritemplate.Values{}
	for _, name := range tmpl.Varnames() {
		v, ok := fields.Get(name)
		if !ok || v == nil {
			continue
		}
		if value, ok := templateValue(v); ok {
			values.Set(name, value)
		}
	}

	expanded, err := tmpl.Expand(values)
	if err != nil {
		return "", fmt.Errorf("transition '%s': %w", t.Name, err)
	}
	if c.base == nil {
		return expanded, nil
	}
	ref, err := url.Parse(expanded)
	if err != nil {
		return "", fmt.Errorf("transition '%s': expanded href %q: %w", t.Name, expanded, err)
	}
	return c.base.ResolveReference(ref).String(), nil
}

func templateValue(v any) (uritemplate.Value, bool) {
	if list, ok := v.([]any); ok {
		items := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := scalarString(item)
			if !ok {
				return uritemplate.Value{}, false
			}
			items = append(items, s)
		}
		return uritemplate.List(items...), true
	}
	s, ok := scalarString(v)
	if !ok {
		return uritemplate.Value{}, false
	}
	return uritemplate.String(s), true
}

func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
