package config

import (
	"fmt"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/hashicorp/go-multierror"
)

// LoadRecords reads a record file. A file may hold a "records" list or a
// single record at the top level.
func LoadRecords(path string) ([]*domain.Record, error) {
	raw, err := readDocument(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return DecodeRecords(raw)
}

// DecodeRecords builds records from generic data.
func DecodeRecords(raw map[string]any) ([]*domain.Record, error) {
	list, ok := raw["records"]
	if !ok {
		rec, err := domain.DecodeRecord(raw)
		if err != nil {
			return nil, err
		}
		return []*domain.Record{rec}, nil
	}

	items, ok := list.([]any)
	if !ok {
		return nil, fmt.Errorf("records must be a list, got %T", list)
	}

	var result *multierror.Error
	records := make([]*domain.Record, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("records[%d]: expected a mapping, got %T", i, item))
			continue
		}
		rec, err := domain.DecodeRecord(m)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("records[%d]: %w", i, err))
			continue
		}
		records = append(records, rec)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return records, nil
}
