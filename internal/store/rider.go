package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onemarketph/backoffice/internal/model"
)

type RiderStore struct {
	pool *pgxpool.Pool
}

func NewRiderStore(pool *pgxpool.Pool) *RiderStore {
	return &RiderStore{pool: pool}
}

const riderColumns = `id, first_name, last_name, email, phone, vehicle_type,
	license_number, status, status_reason, version, created_at, updated_at`

func scanRider(row pgx.Row) (*model.Rider, error) {
	var r model.Rider
	err := row.Scan(&r.ID, &r.FirstName, &r.LastName, &r.Email, &r.Phone,
		&r.VehicleType, &r.LicenseNumber, &r.Status, &r.StatusReason,
		&r.Version, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan rider: %w", err)
	}
	return &r, nil
}

func (s *RiderStore) GetByID(ctx context.Context, id string) (*model.Rider, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+riderColumns+` FROM riders WHERE id = $1`, id)
	return scanRider(row)
}

// List returns riders, optionally filtered by status, newest first.
func (s *RiderStore) List(ctx context.Context, status model.RiderStatus) ([]model.Rider, error) {
	query := `SELECT ` + riderColumns + ` FROM riders`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	defer rows.Close()

	var riders []model.Rider
	for rows.Next() {
		r, err := scanRider(rows)
		if err != nil {
			return nil, err
		}
		riders = append(riders, *r)
	}
	return riders, rows.Err()
}

// UpdateStatus writes the new status and reason if the row still carries the
// expected version. Returns ErrVersionConflict when another request got
// there first and ErrNotFound when the row is gone.
func (s *RiderStore) UpdateStatus(ctx context.Context, id string, status model.RiderStatus, reason string, expectedVersion int64) (*model.Rider, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE riders
		SET status = $2, status_reason = $3, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $4
		RETURNING `+riderColumns,
		id, status, reason, expectedVersion)

	rider, err := scanRider(row)
	if errors.Is(err, ErrNotFound) {
		return nil, s.classifyMiss(ctx, id)
	}
	return rider, err
}

// classifyMiss distinguishes a deleted row from a concurrently updated one.
func (s *RiderStore) classifyMiss(ctx context.Context, id string) error {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM riders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check rider existence: %w", err)
	}
	if exists {
		return ErrVersionConflict
	}
	return ErrNotFound
}

// Delete removes the rider; dependent rows go with it via cascade rules.
func (s *RiderStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM riders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rider: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
