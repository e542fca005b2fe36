package archive

import "context"

// Repository defines the interface for archived session persistence.
type Repository interface {
	// FindByID retrieves a record by its session identifier.
	// Returns nil if not found.
	FindByID(ctx context.Context, id string) (*Record, error)

	// FindRecent retrieves up to limit records, most recently completed first.
	FindRecent(ctx context.Context, limit int) ([]*Record, error)

	// Insert stores a new record.
	Insert(ctx context.Context, record *Record) error

	// Delete removes a record by its session identifier.
	Delete(ctx context.Context, id string) error
}
