package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/store"
)

type productStore interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
	UpdateStatus(ctx context.Context, id string, status model.ProductStatus, expectedVersion int64) (*model.Product, error)
	UpdateStatusBatch(ctx context.Context, ids []string, status model.ProductStatus) ([]string, error)
	DeleteBatch(ctx context.Context, ids []string) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// ProductService drives listing approval and the table bulk actions.
type ProductService struct {
	products productStore
	notifier Notifier
	logger   *slog.Logger
}

func NewProductService(products productStore, notifier Notifier, logger *slog.Logger) *ProductService {
	return &ProductService{products: products, notifier: notifier, logger: logger}
}

// ChangeStatus reviews a single listing. "Re-activate" requests are
// normalized to Approved before anything touches the store.
func (s *ProductService) ChangeStatus(ctx context.Context, id string, requested model.ProductStatus) (*Result[model.Product], error) {
	if !requested.Valid() {
		return nil, &InvalidStatusError{Entity: "product", Status: string(requested)}
	}
	status := requested.Normalize()

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", id, err)
	}

	if !product.Status.CanTransition(status) {
		return nil, &TransitionError{Entity: "product", From: string(product.Status), To: string(requested)}
	}

	updated, err := s.products.UpdateStatus(ctx, id, status, product.Version)
	if errors.Is(err, store.ErrVersionConflict) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}

	if status == model.ProductDeactivated {
		s.notify(ctx, StatusEvent{
			Entity:   "product",
			EntityID: updated.ID,
			Status:   string(status),
		})
	}

	return &Result[model.Product]{
		Data:    *updated,
		Message: fmt.Sprintf("Product %s successfully", strings.ToLower(string(status))),
	}, nil
}

// BulkUpdateStatus applies one status to every selected product in a single
// batched store call. Rows the batch did not reach come back as individual
// failures instead of aborting the rest.
func (s *ProductService) BulkUpdateStatus(ctx context.Context, ids []string, requested model.ProductStatus) ([]BulkResult, error) {
	if len(ids) == 0 {
		return nil, errors.New("no products selected")
	}
	if !requested.Valid() {
		return nil, &InvalidStatusError{Entity: "product", Status: string(requested)}
	}
	status := requested.Normalize()

	updated, err := s.products.UpdateStatusBatch(ctx, ids, status)
	if err != nil {
		return nil, fmt.Errorf("batch update products: %w", err)
	}

	return bulkResults(ids, updated, "product not found"), nil
}

// BulkDelete hard-deletes every selected product in one batched call.
func (s *ProductService) BulkDelete(ctx context.Context, ids []string) ([]BulkResult, error) {
	if len(ids) == 0 {
		return nil, errors.New("no products selected")
	}

	deleted, err := s.products.DeleteBatch(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("batch delete products: %w", err)
	}

	return bulkResults(ids, deleted, "product not found"), nil
}

// Delete removes one listing with its variants, specifications and discounts.
func (s *ProductService) Delete(ctx context.Context, id string) (string, error) {
	if err := s.products.Delete(ctx, id); err != nil {
		return "", fmt.Errorf("delete product %s: %w", id, err)
	}
	return "Product deleted successfully", nil
}

func (s *ProductService) notify(ctx context.Context, ev StatusEvent) {
	if err := s.notifier.StatusChanged(ctx, ev); err != nil {
		s.logger.Error("product status notification failed",
			"product_id", ev.EntityID, "status", ev.Status, "err", err)
	}
}
