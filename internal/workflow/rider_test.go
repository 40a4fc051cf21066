package workflow

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/store"
)

type fakeRiderStore struct {
	riders      map[string]*model.Rider
	updateCalls int
	failUpdate  error
}

func newFakeRiderStore(riders ...*model.Rider) *fakeRiderStore {
	f := &fakeRiderStore{riders: map[string]*model.Rider{}}
	for _, r := range riders {
		copy := *r
		f.riders[r.ID] = &copy
	}
	return f
}

func (f *fakeRiderStore) GetByID(_ context.Context, id string) (*model.Rider, error) {
	if r, ok := f.riders[id]; ok {
		copy := *r
		return &copy, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeRiderStore) UpdateStatus(_ context.Context, id string, status model.RiderStatus, reason string, expectedVersion int64) (*model.Rider, error) {
	f.updateCalls++
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	r, ok := f.riders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if r.Version != expectedVersion {
		return nil, store.ErrVersionConflict
	}
	r.Status = status
	r.StatusReason = reason
	r.Version++
	copy := *r
	return &copy, nil
}

func (f *fakeRiderStore) Delete(_ context.Context, id string) error {
	if _, ok := f.riders[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.riders, id)
	return nil
}

type captureNotifier struct {
	events []StatusEvent
	err    error
}

func (n *captureNotifier) StatusChanged(_ context.Context, ev StatusEvent) error {
	n.events = append(n.events, ev)
	return n.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pendingRider() *model.Rider {
	return &model.Rider{
		ID:        "r1",
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Email:     "juan@example.com",
		Status:    model.RiderPending,
		Version:   1,
	}
}

func TestRiderChangeStatusApprove(t *testing.T) {
	riders := newFakeRiderStore(pendingRider())
	notifier := &captureNotifier{}
	svc := NewRiderService(riders, notifier, testLogger())

	res, err := svc.ChangeStatus(context.Background(), "r1", model.RiderApproved, "")
	require.NoError(t, err)

	assert.Equal(t, model.RiderApproved, res.Data.Status)
	assert.Equal(t, int64(2), res.Data.Version)
	assert.Contains(t, res.Message, "approved successfully")

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "juan@example.com", notifier.events[0].Recipient)
	assert.Equal(t, "Approved", notifier.events[0].Status)
}

func TestRiderChangeStatusRejectKeepsReason(t *testing.T) {
	riders := newFakeRiderStore(pendingRider())
	svc := NewRiderService(riders, NopNotifier{}, testLogger())

	res, err := svc.ChangeStatus(context.Background(), "r1", model.RiderRejected, "incomplete docs")
	require.NoError(t, err)

	assert.Contains(t, res.Message, "rejected successfully")
	assert.Equal(t, model.RiderRejected, res.Data.Status)
	assert.Equal(t, "incomplete docs", res.Data.StatusReason)
}

func TestRiderChangeStatusNotFound(t *testing.T) {
	svc := NewRiderService(newFakeRiderStore(), NopNotifier{}, testLogger())

	res, err := svc.ChangeStatus(context.Background(), "missing", model.RiderApproved, "")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRiderChangeStatusIllegalTransition(t *testing.T) {
	rejected := pendingRider()
	rejected.Status = model.RiderApproved
	svc := NewRiderService(newFakeRiderStore(rejected), NopNotifier{}, testLogger())

	// Approved riders cannot be put back under review.
	_, err := svc.ChangeStatus(context.Background(), "r1", model.RiderUnderReview, "")

	var tErr *TransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, "Approved", tErr.From)
	assert.Equal(t, "Under Review", tErr.To)
}

func TestRiderChangeStatusUnknownStatus(t *testing.T) {
	svc := NewRiderService(newFakeRiderStore(pendingRider()), NopNotifier{}, testLogger())

	_, err := svc.ChangeStatus(context.Background(), "r1", model.RiderStatus("Banned"), "")

	var sErr *InvalidStatusError
	assert.ErrorAs(t, err, &sErr)
}

func TestRiderChangeStatusIdempotent(t *testing.T) {
	riders := newFakeRiderStore(pendingRider())
	svc := NewRiderService(riders, NopNotifier{}, testLogger())

	_, err := svc.ChangeStatus(context.Background(), "r1", model.RiderApproved, "")
	require.NoError(t, err)

	res, err := svc.ChangeStatus(context.Background(), "r1", model.RiderApproved, "")
	require.NoError(t, err)
	assert.Equal(t, model.RiderApproved, res.Data.Status)
}

func TestRiderChangeStatusConflict(t *testing.T) {
	riders := newFakeRiderStore(pendingRider())
	riders.failUpdate = store.ErrVersionConflict
	svc := NewRiderService(riders, NopNotifier{}, testLogger())

	_, err := svc.ChangeStatus(context.Background(), "r1", model.RiderApproved, "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRiderNotifierFailureDoesNotFailTransition(t *testing.T) {
	riders := newFakeRiderStore(pendingRider())
	notifier := &captureNotifier{err: assert.AnError}
	svc := NewRiderService(riders, notifier, testLogger())

	res, err := svc.ChangeStatus(context.Background(), "r1", model.RiderApproved, "")
	require.NoError(t, err)
	assert.Equal(t, model.RiderApproved, res.Data.Status)
}

func TestRiderDelete(t *testing.T) {
	riders := newFakeRiderStore(pendingRider())
	svc := NewRiderService(riders, NopNotifier{}, testLogger())

	msg, err := svc.Delete(context.Background(), "r1")
	require.NoError(t, err)
	assert.Contains(t, msg, "deleted")

	_, err = svc.Delete(context.Background(), "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
