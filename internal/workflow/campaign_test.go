package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/store"
)

type fakeCampaignProductStore struct {
	entries map[string]*model.CampaignProduct
}

func (f *fakeCampaignProductStore) GetByID(_ context.Context, id string) (*model.CampaignProduct, error) {
	if cp, ok := f.entries[id]; ok {
		copy := *cp
		return &copy, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeCampaignProductStore) UpdateStatus(_ context.Context, id string, status model.CampaignProductStatus, reason string, expectedVersion int64) (*model.CampaignProduct, error) {
	cp, ok := f.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if cp.Version != expectedVersion {
		return nil, store.ErrVersionConflict
	}
	cp.Status = status
	cp.StatusReason = reason
	cp.Version++
	copy := *cp
	return &copy, nil
}

func TestCampaignProductRejectPersistsReason(t *testing.T) {
	entries := &fakeCampaignProductStore{entries: map[string]*model.CampaignProduct{
		"cp1": {ID: "cp1", CampaignID: "summer", ProductID: "p1", Status: model.CampaignProductPending, Version: 1},
	}}
	svc := NewCampaignService(entries, testLogger())

	res, err := svc.ChangeStatus(context.Background(), "cp1", model.CampaignProductRejected, "product not campaign eligible")
	require.NoError(t, err)

	assert.Contains(t, res.Message, "rejected successfully")
	assert.Equal(t, "product not campaign eligible", res.Data.StatusReason)
	assert.Equal(t, "product not campaign eligible", entries.entries["cp1"].StatusReason)
}

func TestCampaignProductIllegalTransition(t *testing.T) {
	entries := &fakeCampaignProductStore{entries: map[string]*model.CampaignProduct{
		"cp1": {ID: "cp1", Status: model.CampaignProductApproved, Version: 1},
	}}
	svc := NewCampaignService(entries, testLogger())

	_, err := svc.ChangeStatus(context.Background(), "cp1", model.CampaignProductPending, "")

	var tErr *TransitionError
	assert.ErrorAs(t, err, &tErr)
}
