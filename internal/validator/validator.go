package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/yosida95/uritemplate/v3"
)

// ValidateRecords checks records against the catalog before they are served:
// every kind is declared, ids are unique per kind, every guard evaluates
// without error and every href template variable is present in the record.
func ValidateRecords(cat *domain.Catalog, records []*domain.Record) error {
	var errors []string
	seen := make(map[string]bool)

	for _, rec := range records {
		ref := rec.Kind + "/" + rec.ID
		if seen[ref] {
			errors = append(errors, fmt.Sprintf("Duplicate record: '%s'", ref))
			continue
		}
		seen[ref] = true

		bound, err := cat.Bind(rec)
		if err != nil {
			errors = append(errors, fmt.Sprintf("Undeclared kind for '%s': %v", ref, err))
			continue
		}

		fields, err := domain.FieldsOf(bound)
		if err != nil {
			errors = append(errors, fmt.Sprintf("Unreadable record '%s': %v", ref, err))
			continue
		}
		values := domain.FieldMap(fields)

		for _, t := range bound.Transitions().Declared() {
			if _, err := t.Allow(bound); err != nil {
				errors = append(errors, fmt.Sprintf("Guard of '%s' fails on '%s': %v", t.Name, ref, err))
			}

			tmpl, err := uritemplate.New(t.Href)
			if err != nil {
				errors = append(errors, fmt.Sprintf("Invalid href of '%s': %v", t.Name, err))
				continue
			}
			for _, name := range tmpl.Varnames() {
				if v, ok := values[name]; !ok || v == nil {
					errors = append(errors, fmt.Sprintf("Href of '%s' needs '%s', missing on '%s'", t.Name, name, ref))
				}
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}
