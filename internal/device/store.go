package device

import "context"

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks

// Store persists device records. Implementations return domain errors with
// CodeStore for infrastructure failures; absence is reported via zero affected
// rows or a nil record, never as an error, so callers decide the domain
// meaning.
type Store interface {
	// Create assigns the record's ID and CreatedAt and persists it.
	Create(ctx context.Context, d *Device) (*Device, error)

	// UpdateOwned applies the patch to the record only when both the id and
	// the owner match, and returns the number of affected rows (0 or 1).
	UpdateOwned(ctx context.Context, id int64, ownerSubjectID string, patch Patch) (int64, error)

	// ListByOwner returns the owner's devices in registration order.
	ListByOwner(ctx context.Context, ownerSubjectID string) ([]Device, error)

	// FindOwned returns the record only when both the id and the owner match,
	// or nil when no such record is visible to the owner.
	FindOwned(ctx context.Context, id int64, ownerSubjectID string) (*Device, error)
}
