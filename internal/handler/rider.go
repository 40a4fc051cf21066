package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/workflow"
)

type riderWorkflow interface {
	ChangeStatus(ctx context.Context, id string, status model.RiderStatus, reason string) (*workflow.Result[model.Rider], error)
	Delete(ctx context.Context, id string) (string, error)
}

type riderLister interface {
	List(ctx context.Context, status model.RiderStatus) ([]model.Rider, error)
}

// RiderHandler serves the rider application review queue.
type RiderHandler struct {
	BaseHandler
	riders  riderWorkflow
	listing riderLister
}

func NewRiderHandler(logger *slog.Logger, riders riderWorkflow, listing riderLister) *RiderHandler {
	return &RiderHandler{BaseHandler: BaseHandler{Logger: logger}, riders: riders, listing: listing}
}

// List returns rider applications, optionally filtered by ?status=.
func (h *RiderHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.RiderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, CodeValidationError,
			"unknown rider status filter")
		return
	}

	riders, err := h.listing.List(r.Context(), status)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"data": riders}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

type changeRiderStatusRequest struct {
	Status model.RiderStatus `json:"status"`
	Reason string            `json:"reason"`
}

// ChangeStatus moves one rider application through the approval workflow.
func (h *RiderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req changeRiderStatusRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	res, err := h.riders.ChangeStatus(r.Context(), id, req.Status, req.Reason)
	if err != nil {
		h.workflowErrorResponse(w, r, err)
		return
	}

	err = h.writeJSON(w, http.StatusOK, envelope{"message": res.Message, "data": res.Data}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// Delete removes a rider application and its dependents.
func (h *RiderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msg, err := h.riders.Delete(r.Context(), id)
	if err != nil {
		h.workflowErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"message": msg}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
