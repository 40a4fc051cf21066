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

type campaignProductStore interface {
	GetByID(ctx context.Context, id string) (*model.CampaignProduct, error)
	UpdateStatus(ctx context.Context, id string, status model.CampaignProductStatus, reason string, expectedVersion int64) (*model.CampaignProduct, error)
}

// CampaignService reviews products enrolled in marketing campaigns.
type CampaignService struct {
	entries campaignProductStore
	logger  *slog.Logger
}

func NewCampaignService(entries campaignProductStore, logger *slog.Logger) *CampaignService {
	return &CampaignService{entries: entries, logger: logger}
}

// ChangeStatus moves a campaign entry to the requested status. The reason is
// persisted with the entry so a rejection can be explained later.
func (s *CampaignService) ChangeStatus(ctx context.Context, id string, status model.CampaignProductStatus, reason string) (*Result[model.CampaignProduct], error) {
	if !status.Valid() {
		return nil, &InvalidStatusError{Entity: "campaign product", Status: string(status)}
	}

	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load campaign product %s: %w", id, err)
	}

	if !entry.Status.CanTransition(status) {
		return nil, &TransitionError{Entity: "campaign product", From: string(entry.Status), To: string(status)}
	}

	updated, err := s.entries.UpdateStatus(ctx, id, status, reason, entry.Version)
	if errors.Is(err, store.ErrVersionConflict) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("update campaign product %s: %w", id, err)
	}

	return &Result[model.CampaignProduct]{
		Data:    *updated,
		Message: fmt.Sprintf("Campaign product %s successfully", strings.ToLower(string(status))),
	}, nil
}
