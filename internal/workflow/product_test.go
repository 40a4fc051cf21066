package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/store"
)

type fakeProductStore struct {
	products   map[string]*model.Product
	batchCalls int
}

func newFakeProductStore(products ...*model.Product) *fakeProductStore {
	f := &fakeProductStore{products: map[string]*model.Product{}}
	for _, p := range products {
		copy := *p
		f.products[p.ID] = &copy
	}
	return f
}

func (f *fakeProductStore) GetByID(_ context.Context, id string) (*model.Product, error) {
	if p, ok := f.products[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeProductStore) UpdateStatus(_ context.Context, id string, status model.ProductStatus, expectedVersion int64) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if p.Version != expectedVersion {
		return nil, store.ErrVersionConflict
	}
	p.Status = status
	p.Version++
	copy := *p
	return &copy, nil
}

func (f *fakeProductStore) UpdateStatusBatch(_ context.Context, ids []string, status model.ProductStatus) ([]string, error) {
	f.batchCalls++
	var updated []string
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			p.Status = status
			p.Version++
			updated = append(updated, id)
		}
	}
	return updated, nil
}

func (f *fakeProductStore) DeleteBatch(_ context.Context, ids []string) ([]string, error) {
	f.batchCalls++
	var deleted []string
	for _, id := range ids {
		if _, ok := f.products[id]; ok {
			delete(f.products, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

func (f *fakeProductStore) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func listedProduct(id string, status model.ProductStatus) *model.Product {
	return &model.Product{
		ID:         id,
		VendorID:   "v1",
		CategoryID: "c1",
		Name:       "Dried Mangoes 200g",
		PriceCents: 18500,
		Status:     status,
		Version:    1,
	}
}

func TestProductChangeStatusApprove(t *testing.T) {
	products := newFakeProductStore(listedProduct("p1", model.ProductPending))
	svc := NewProductService(products, NopNotifier{}, testLogger())

	res, err := svc.ChangeStatus(context.Background(), "p1", model.ProductApproved)
	require.NoError(t, err)
	assert.Equal(t, model.ProductApproved, res.Data.Status)
	assert.Contains(t, res.Message, "approved successfully")
}

func TestProductReactivateWritesApproved(t *testing.T) {
	products := newFakeProductStore(listedProduct("p1", model.ProductDeactivated))
	svc := NewProductService(products, NopNotifier{}, testLogger())

	res, err := svc.ChangeStatus(context.Background(), "p1", model.ProductReactivate)
	require.NoError(t, err)

	// The request label never reaches the store.
	assert.Equal(t, model.ProductApproved, res.Data.Status)
	assert.Equal(t, model.ProductApproved, products.products["p1"].Status)
}

func TestProductDeactivationNotifies(t *testing.T) {
	products := newFakeProductStore(listedProduct("p1", model.ProductApproved))
	notifier := &captureNotifier{}
	svc := NewProductService(products, notifier, testLogger())

	_, err := svc.ChangeStatus(context.Background(), "p1", model.ProductDeactivated)
	require.NoError(t, err)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, "Deactivated", notifier.events[0].Status)
}

func TestProductChangeStatusIllegalTransition(t *testing.T) {
	products := newFakeProductStore(listedProduct("p1", model.ProductApproved))
	svc := NewProductService(products, NopNotifier{}, testLogger())

	_, err := svc.ChangeStatus(context.Background(), "p1", model.ProductPending)

	var tErr *TransitionError
	assert.ErrorAs(t, err, &tErr)
}

func TestBulkUpdateStatusIssuesOneBatchedCall(t *testing.T) {
	products := newFakeProductStore(
		listedProduct("p1", model.ProductApproved),
		listedProduct("p2", model.ProductApproved),
		listedProduct("p3", model.ProductApproved),
	)
	svc := NewProductService(products, NopNotifier{}, testLogger())

	results, err := svc.BulkUpdateStatus(context.Background(), []string{"p1", "p2", "p3"}, model.ProductDeactivated)
	require.NoError(t, err)

	assert.Equal(t, 1, products.batchCalls)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.True(t, r.OK, "result %d", i)
	}
	for _, p := range products.products {
		assert.Equal(t, model.ProductDeactivated, p.Status)
	}
}

func TestBulkUpdateStatusReportsMissingRows(t *testing.T) {
	products := newFakeProductStore(listedProduct("p1", model.ProductApproved))
	svc := NewProductService(products, NopNotifier{}, testLogger())

	results, err := svc.BulkUpdateStatus(context.Background(), []string{"p1", "ghost"}, model.ProductDeactivated)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.Equal(t, "product not found", results[1].Error)
}

func TestBulkUpdateStatusEmptySelection(t *testing.T) {
	svc := NewProductService(newFakeProductStore(), NopNotifier{}, testLogger())

	_, err := svc.BulkUpdateStatus(context.Background(), nil, model.ProductApproved)
	assert.Error(t, err)
}

func TestBulkDelete(t *testing.T) {
	products := newFakeProductStore(
		listedProduct("p1", model.ProductApproved),
		listedProduct("p2", model.ProductPending),
	)
	svc := NewProductService(products, NopNotifier{}, testLogger())

	results, err := svc.BulkDelete(context.Background(), []string{"p1", "p2", "ghost"})
	require.NoError(t, err)

	assert.Equal(t, 1, products.batchCalls)
	assert.Empty(t, products.products)
	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.True(t, results[1].OK)
	assert.False(t, results[2].OK)
}
