package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	dErrors "vcgate/pkg/domain-errors"
)

// PostgresStore persists device records in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE devices (
//	    id               BIGSERIAL PRIMARY KEY,
//	    owner_subject_id TEXT NOT NULL,
//	    network          TEXT NOT NULL,
//	    address          TEXT NOT NULL,
//	    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX devices_owner_idx ON devices (owner_subject_id);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, d *Device) (*Device, error) {
	query := `
		INSERT INTO devices (owner_subject_id, network, address)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	rec := *d
	err := s.db.QueryRowContext(ctx, query, d.OwnerSubjectID, d.Network, d.Address).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "create device")
	}
	return &rec, nil
}

// UpdateOwned builds the SET clause from the patch's non-nil fields only, so
// the column allow-list holds at the SQL level as well. The owner predicate
// lives in the WHERE clause: a wrong owner and a missing id are the same
// zero-row outcome.
func (s *PostgresStore) UpdateOwned(ctx context.Context, id int64, ownerSubjectID string, patch Patch) (int64, error) {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if patch.Network != nil {
		args = append(args, *patch.Network)
		sets = append(sets, fmt.Sprintf("network = $%d", len(args)))
	}
	if patch.Address != nil {
		args = append(args, *patch.Address)
		sets = append(sets, fmt.Sprintf("address = $%d", len(args)))
	}
	if len(sets) == 0 {
		return 0, nil
	}

	args = append(args, id)
	idArg := len(args)
	args = append(args, ownerSubjectID)
	ownerArg := len(args)

	query := fmt.Sprintf(
		"UPDATE devices SET %s WHERE id = $%d AND owner_subject_id = $%d",
		strings.Join(sets, ", "), idArg, ownerArg,
	)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeStore, "update device")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeStore, "update device row count")
	}
	return n, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerSubjectID string) ([]Device, error) {
	query := `
		SELECT id, owner_subject_id, network, address, created_at
		FROM devices
		WHERE owner_subject_id = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, ownerSubjectID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "list devices")
	}
	defer rows.Close()

	out := make([]Device, 0)
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.ID, &d.OwnerSubjectID, &d.Network, &d.Address, &d.CreatedAt); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeStore, "scan device")
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "list devices")
	}
	return out, nil
}

func (s *PostgresStore) FindOwned(ctx context.Context, id int64, ownerSubjectID string) (*Device, error) {
	query := `
		SELECT id, owner_subject_id, network, address, created_at
		FROM devices
		WHERE id = $1 AND owner_subject_id = $2
	`
	var d Device
	err := s.db.QueryRowContext(ctx, query, id, ownerSubjectID).
		Scan(&d.ID, &d.OwnerSubjectID, &d.Network, &d.Address, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "find device")
	}
	return &d, nil
}
