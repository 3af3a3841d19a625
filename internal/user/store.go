package user

import "context"

// Error Contract:
// All store methods follow this pattern:
// - Return a CodeNotFound domain error when the requested entity does not exist
// - Return nil for successful operations
// - Return CodeStore wrapped errors for infrastructure failures
type Store interface {
	// FindOrCreateBySubjectID atomically finds the record for the subject id
	// or creates it if absent. Concurrent calls for the same subject id
	// observe a single record.
	FindOrCreateBySubjectID(ctx context.Context, candidate *User) (*User, error)

	FindBySubjectID(ctx context.Context, subjectID string) (*User, error)
}
