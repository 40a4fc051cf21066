package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onemarketph/backoffice/internal/model"
)

type CampaignProductStore struct {
	pool *pgxpool.Pool
}

func NewCampaignProductStore(pool *pgxpool.Pool) *CampaignProductStore {
	return &CampaignProductStore{pool: pool}
}

const campaignProductColumns = `id, campaign_id, product_id, status,
	status_reason, version, created_at, updated_at`

func scanCampaignProduct(row pgx.Row) (*model.CampaignProduct, error) {
	var cp model.CampaignProduct
	err := row.Scan(&cp.ID, &cp.CampaignID, &cp.ProductID, &cp.Status,
		&cp.StatusReason, &cp.Version, &cp.CreatedAt, &cp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan campaign product: %w", err)
	}
	return &cp, nil
}

func (s *CampaignProductStore) GetByID(ctx context.Context, id string) (*model.CampaignProduct, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+campaignProductColumns+` FROM campaign_products WHERE id = $1`, id)
	return scanCampaignProduct(row)
}

func (s *CampaignProductStore) ListByCampaign(ctx context.Context, campaignID string) ([]model.CampaignProduct, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+campaignProductColumns+` FROM campaign_products
		 WHERE campaign_id = $1 ORDER BY created_at DESC`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list campaign products: %w", err)
	}
	defer rows.Close()

	var entries []model.CampaignProduct
	for rows.Next() {
		cp, err := scanCampaignProduct(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *cp)
	}
	return entries, rows.Err()
}

// UpdateStatus writes status and reason with a version check, mirroring the
// rider and product stores.
func (s *CampaignProductStore) UpdateStatus(ctx context.Context, id string, status model.CampaignProductStatus, reason string, expectedVersion int64) (*model.CampaignProduct, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE campaign_products
		SET status = $2, status_reason = $3, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $4
		RETURNING `+campaignProductColumns,
		id, status, reason, expectedVersion)

	cp, err := scanCampaignProduct(row)
	if errors.Is(err, ErrNotFound) {
		return nil, s.classifyMiss(ctx, id)
	}
	return cp, err
}

func (s *CampaignProductStore) classifyMiss(ctx context.Context, id string) error {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM campaign_products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check campaign product existence: %w", err)
	}
	if exists {
		return ErrVersionConflict
	}
	return ErrNotFound
}
