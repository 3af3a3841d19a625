package user

import (
	"context"
	"database/sql"
	"errors"

	dErrors "vcgate/pkg/domain-errors"
)

// PostgresStore persists user records in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE users (
//	    id           UUID PRIMARY KEY,
//	    subject_id   TEXT NOT NULL UNIQUE,
//	    display_name TEXT NOT NULL,
//	    phone        TEXT NOT NULL DEFAULT '',
//	    created_at   TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindOrCreateBySubjectID relies on the unique index for atomicity: the
// insert is a no-op when the subject id exists, and the follow-up select
// returns whichever record won, so the first-seen display name sticks.
func (s *PostgresStore) FindOrCreateBySubjectID(ctx context.Context, candidate *User) (*User, error) {
	insert := `
		INSERT INTO users (id, subject_id, display_name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (subject_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, insert,
		candidate.ID,
		candidate.SubjectID,
		candidate.DisplayName,
		candidate.Phone,
		candidate.CreatedAt,
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "create user")
	}
	return s.FindBySubjectID(ctx, candidate.SubjectID)
}

func (s *PostgresStore) FindBySubjectID(ctx context.Context, subjectID string) (*User, error) {
	query := `
		SELECT id, subject_id, display_name, phone, created_at
		FROM users
		WHERE subject_id = $1
	`
	var u User
	err := s.db.QueryRowContext(ctx, query, subjectID).Scan(
		&u.ID, &u.SubjectID, &u.DisplayName, &u.Phone, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "find user by subject id")
	}
	return &u, nil
}
