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

type riderStore interface {
	GetByID(ctx context.Context, id string) (*model.Rider, error)
	UpdateStatus(ctx context.Context, id string, status model.RiderStatus, reason string, expectedVersion int64) (*model.Rider, error)
	Delete(ctx context.Context, id string) error
}

// RiderService drives the rider application review workflow.
type RiderService struct {
	riders   riderStore
	notifier Notifier
	logger   *slog.Logger
}

func NewRiderService(riders riderStore, notifier Notifier, logger *slog.Logger) *RiderService {
	return &RiderService{riders: riders, notifier: notifier, logger: logger}
}

// ChangeStatus moves a rider application to the requested status. The reason
// is stored alongside the status and included in the notification; it is
// required reading for rejections but accepted on any transition.
func (s *RiderService) ChangeStatus(ctx context.Context, id string, status model.RiderStatus, reason string) (*Result[model.Rider], error) {
	if !status.Valid() {
		return nil, &InvalidStatusError{Entity: "rider", Status: string(status)}
	}

	rider, err := s.riders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load rider %s: %w", id, err)
	}

	if !rider.Status.CanTransition(status) {
		return nil, &TransitionError{Entity: "rider", From: string(rider.Status), To: string(status)}
	}

	updated, err := s.riders.UpdateStatus(ctx, id, status, reason, rider.Version)
	if errors.Is(err, store.ErrVersionConflict) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("update rider %s: %w", id, err)
	}

	s.notify(ctx, StatusEvent{
		Entity:    "rider",
		EntityID:  updated.ID,
		Recipient: updated.Email,
		Status:    string(status),
		Reason:    reason,
	})

	return &Result[model.Rider]{
		Data:    *updated,
		Message: fmt.Sprintf("Rider application %s successfully", strings.ToLower(string(status))),
	}, nil
}

// Delete removes a rider application and its dependent records.
func (s *RiderService) Delete(ctx context.Context, id string) (string, error) {
	if err := s.riders.Delete(ctx, id); err != nil {
		return "", fmt.Errorf("delete rider %s: %w", id, err)
	}
	return "Rider deleted successfully", nil
}

func (s *RiderService) notify(ctx context.Context, ev StatusEvent) {
	if err := s.notifier.StatusChanged(ctx, ev); err != nil {
		// Notification failures never roll back the transition.
		s.logger.Error("rider status notification failed",
			"rider_id", ev.EntityID, "status", ev.Status, "err", err)
	}
}
