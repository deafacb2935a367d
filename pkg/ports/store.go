package ports

import (
	"context"

	"github.com/aretw0/waymark/pkg/domain"
)

// ResourceStore defines the interface for persisting records.
// Stored records are unbound; callers attach them to a catalog registry
// with domain.Catalog.Bind before rendering.
type ResourceStore interface {
	// Save persists the record under its kind and id, replacing any previous value.
	Save(ctx context.Context, rec *domain.Record) error

	// Load retrieves a record.
	// Returns domain.ErrResourceNotFound if the record does not exist.
	Load(ctx context.Context, kind, id string) (*domain.Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, kind, id string) error

	// List returns the ids stored for kind, sorted.
	List(ctx context.Context, kind string) ([]string, error)
}
