package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/workflow"
)

type campaignWorkflow interface {
	ChangeStatus(ctx context.Context, id string, status model.CampaignProductStatus, reason string) (*workflow.Result[model.CampaignProduct], error)
}

type campaignProductLister interface {
	ListByCampaign(ctx context.Context, campaignID string) ([]model.CampaignProduct, error)
}

// CampaignHandler serves the campaign enrollment review queue.
type CampaignHandler struct {
	BaseHandler
	entries campaignWorkflow
	listing campaignProductLister
}

func NewCampaignHandler(logger *slog.Logger, entries campaignWorkflow, listing campaignProductLister) *CampaignHandler {
	return &CampaignHandler{BaseHandler: BaseHandler{Logger: logger}, entries: entries, listing: listing}
}

// List returns a campaign's product entries (?campaign= is required).
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaignID := r.URL.Query().Get("campaign")
	if campaignID == "" {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, "campaign query parameter is required")
		return
	}

	entries, err := h.listing.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"data": entries}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

type changeCampaignProductStatusRequest struct {
	Status model.CampaignProductStatus `json:"status"`
	Reason string                      `json:"reason"`
}

// ChangeStatus reviews one campaign entry.
func (h *CampaignHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req changeCampaignProductStatusRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	res, err := h.entries.ChangeStatus(r.Context(), id, req.Status, req.Reason)
	if err != nil {
		h.workflowErrorResponse(w, r, err)
		return
	}

	err = h.writeJSON(w, http.StatusOK, envelope{"message": res.Message, "data": res.Data}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
