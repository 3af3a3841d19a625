package blocklist

import "context"

// Store persists blocklist entries. Absence is reported through the deleted
// count, never as an error; infrastructure failures carry CodeStore.
type Store interface {
	// Create assigns the entry's ID and CreatedAt and persists it.
	Create(ctx context.Context, e *Entry) (*Entry, error)

	// List returns every entry in insertion order.
	List(ctx context.Context) ([]Entry, error)

	// Delete removes the entry by id and returns the number of deleted rows
	// (0 or 1).
	Delete(ctx context.Context, id int64) (int64, error)
}
