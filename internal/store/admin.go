package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onemarketph/backoffice/internal/model"
)

type AdminStore struct {
	pool *pgxpool.Pool
}

func NewAdminStore(pool *pgxpool.Pool) *AdminStore {
	return &AdminStore{pool: pool}
}

const adminColumns = `id, email, auth_id, smtp_host, smtp_port, smtp_user, smtp_pass, refund_days, image, created_at, updated_at`

func scanAdmin(row pgx.Row) (*model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Email, &a.AuthID, &a.SMTPHost, &a.SMTPPort,
		&a.SMTPUser, &a.SMTPPass, &a.RefundDays, &a.Image, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan admin: %w", err)
	}
	return &a, nil
}

// GetByAuthID finds the admin linked to an external identity. There is at
// most one (auth_id is unique).
func (s *AdminStore) GetByAuthID(ctx context.Context, authID string) (*model.Admin, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE auth_id = $1`, authID)
	return scanAdmin(row)
}

func (s *AdminStore) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
	return scanAdmin(row)
}

func (s *AdminStore) CountAll(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

func (s *AdminStore) Create(ctx context.Context, id, email, authID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO admins (id, email, auth_id) VALUES ($1, $2, $3)`,
		id, email, authID)
	if isUniqueViolation(err) {
		return fmt.Errorf("admin for %s already exists: %w", authID, err)
	}
	return err
}

// UpdateSettings replaces the mutable settings of an admin record.
func (s *AdminStore) UpdateSettings(ctx context.Context, id string, settings model.AdminSettings) (*model.Admin, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE admins
		SET smtp_host = $2, smtp_port = $3, smtp_user = $4, smtp_pass = $5,
		    refund_days = $6, image = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+adminColumns,
		id, settings.SMTPHost, settings.SMTPPort, settings.SMTPUser,
		settings.SMTPPass, settings.RefundDays, settings.Image)
	return scanAdmin(row)
}
