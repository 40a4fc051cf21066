package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onemarketph/backoffice/internal/model"
)

type CategoryStore struct {
	pool *pgxpool.Pool
}

func NewCategoryStore(pool *pgxpool.Pool) *CategoryStore {
	return &CategoryStore{pool: pool}
}

func scanCategory(row pgx.Row) (*model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.ParentID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

func (s *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, parent_id, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (s *CategoryStore) Create(ctx context.Context, id, name string, parentID *string) (*model.Category, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, parent_id, created_at`,
		id, name, parentID)
	c, err := scanCategory(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("category %q already exists: %w", name, err)
	}
	return c, err
}

func (s *CategoryStore) Rename(ctx context.Context, id, name string) (*model.Category, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE categories SET name = $2 WHERE id = $1
		RETURNING id, name, parent_id, created_at`,
		id, name)
	return scanCategory(row)
}

// Delete refuses to remove a category that products or subcategories still
// point at; the FK violation surfaces as ErrReferenced.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return ErrReferenced
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
