package codec

import (
	"fmt"

	"github.com/aretw0/waymark/pkg/domain"
)

// objectDocument collects link data for object-shaped formats and merges it
// into the base fields when the document is closed.
type objectDocument struct {
	fields *domain.Fields
	links  []domain.Link
	states []string
}

func (d *objectDocument) AddLink(link domain.Link) error {
	d.links = append(d.links, link)
	return nil
}

func (d *objectDocument) SetFollowingStates(names []string) error {
	d.states = append([]string{}, names...)
	return nil
}

func (d *objectDocument) close() error {
	if len(d.links) > 0 {
		if err := d.set(LinkKey, d.links); err != nil {
			return err
		}
	}
	if d.states != nil {
		if err := d.set(StatesKey, d.states); err != nil {
			return err
		}
	}
	return nil
}

func (d *objectDocument) set(key string, value any) error {
	if _, exists := d.fields.Get(key); exists {
		return fmt.Errorf("%w: %q", ErrFieldCollision, key)
	}
	d.fields.Set(key, value)
	return nil
}

// buildObject extracts the fields of r and runs hook over them.
func buildObject(r domain.Resource, hook Hook) (*domain.Fields, error) {
	fields, err := domain.FieldsOf(r)
	if err != nil {
		return nil, err
	}
	if hook == nil {
		return fields, nil
	}
	doc := &objectDocument{fields: fields}
	if err := hook(doc); err != nil {
		return nil, err
	}
	if err := doc.close(); err != nil {
		return nil, err
	}
	return fields, nil
}
