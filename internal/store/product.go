package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onemarketph/backoffice/internal/model"
)

type ProductStore struct {
	pool *pgxpool.Pool
}

func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `id, vendor_id, category_id, subcategory_id, name,
	price_cents, approval_status, version, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.VendorID, &p.CategoryID, &p.SubcategoryID,
		&p.Name, &p.PriceCents, &p.Status, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (*model.Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (s *ProductStore) List(ctx context.Context, status model.ProductStatus) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if status != "" {
		query += ` WHERE approval_status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *ProductStore) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1) ORDER BY created_at DESC`, ids)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// UpdateStatus is the single-entity compare-and-swap status write.
func (s *ProductStore) UpdateStatus(ctx context.Context, id string, status model.ProductStatus, expectedVersion int64) (*model.Product, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE products
		SET approval_status = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $3
		RETURNING `+productColumns,
		id, status, expectedVersion)

	product, err := scanProduct(row)
	if errors.Is(err, ErrNotFound) {
		return nil, s.classifyMiss(ctx, id)
	}
	return product, err
}

func (s *ProductStore) classifyMiss(ctx context.Context, id string) error {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check product existence: %w", err)
	}
	if exists {
		return ErrVersionConflict
	}
	return ErrNotFound
}

// UpdateStatusBatch sets every matching product to the same status in one
// round-trip and returns the IDs that were actually updated.
func (s *ProductStore) UpdateStatusBatch(ctx context.Context, ids []string, status model.ProductStatus) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		UPDATE products
		SET approval_status = $2, version = version + 1, updated_at = now()
		WHERE id = ANY($1)
		RETURNING id`,
		ids, status)
	if err != nil {
		return nil, fmt.Errorf("batch update products: %w", err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

// DeleteBatch hard-deletes the products in one round-trip. Variants,
// specifications and discounts cascade at the schema level.
func (s *ProductStore) DeleteBatch(ctx context.Context, ids []string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`DELETE FROM products WHERE id = ANY($1) RETURNING id`, ids)
	if err != nil {
		return nil, fmt.Errorf("batch delete products: %w", err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectIDs(rows pgx.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
