package guard

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/aretw0/waymark/pkg/domain"
)

// FieldIn passes when the top-level field name equals one of values.
// Numeric fields match any Go number with the same JSON text.
func FieldIn(name string, values ...any) domain.Guard {
	return domain.GuardFunc(func(r domain.Resource) (bool, error) {
		fields, err := domain.FieldsOf(r)
		if err != nil {
			return false, err
		}
		got, ok := fields.Get(name)
		if !ok {
			return false, fmt.Errorf("field %q not present", name)
		}
		for _, want := range values {
			if fieldEquals(got, want) {
				return true, nil
			}
		}
		return false, nil
	})
}

func fieldEquals(got, want any) bool {
	if n, ok := got.(json.Number); ok {
		raw, err := json.Marshal(want)
		return err == nil && string(raw) == n.String()
	}
	return reflect.DeepEqual(got, want)
}

// Not negates g.
func Not(g domain.Guard) domain.Guard {
	return domain.GuardFunc(func(r domain.Resource) (bool, error) {
		ok, err := g.Allow(r)
		return !ok && err == nil, err
	})
}

// All passes when every guard passes. Evaluation stops at the first failure
// or error.
func All(guards ...domain.Guard) domain.Guard {
	return domain.GuardFunc(func(r domain.Resource) (bool, error) {
		for _, g := range guards {
			ok, err := g.Allow(r)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	})
}

// Any passes when at least one guard passes.
func Any(guards ...domain.Guard) domain.Guard {
	return domain.GuardFunc(func(r domain.Resource) (bool, error) {
		for _, g := range guards {
			ok, err := g.Allow(r)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	})
}
