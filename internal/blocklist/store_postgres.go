package blocklist

import (
	"context"
	"database/sql"

	dErrors "vcgate/pkg/domain-errors"
)

// PostgresStore persists blocklist entries in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE blocklist (
//	    id         BIGSERIAL PRIMARY KEY,
//	    ip         TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//
// Note the deliberate absence of a UNIQUE constraint on ip: duplicate blocks
// of the same address are allowed and removed independently.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, e *Entry) (*Entry, error) {
	query := `
		INSERT INTO blocklist (ip)
		VALUES ($1)
		RETURNING id, created_at
	`
	rec := *e
	if err := s.db.QueryRowContext(ctx, query, e.IP).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "create blocklist entry")
	}
	return &rec, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	query := `
		SELECT id, ip, created_at
		FROM blocklist
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "list blocklist")
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.IP, &e.CreatedAt); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeStore, "scan blocklist entry")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "list blocklist")
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM blocklist WHERE id = $1", id)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeStore, "delete blocklist entry")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeStore, "delete blocklist row count")
	}
	return n, nil
}
