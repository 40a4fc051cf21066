package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/workflow"
)

type productWorkflow interface {
	ChangeStatus(ctx context.Context, id string, status model.ProductStatus) (*workflow.Result[model.Product], error)
	BulkUpdateStatus(ctx context.Context, ids []string, status model.ProductStatus) ([]workflow.BulkResult, error)
	BulkDelete(ctx context.Context, ids []string) ([]workflow.BulkResult, error)
	Delete(ctx context.Context, id string) (string, error)
}

type productLister interface {
	List(ctx context.Context, status model.ProductStatus) ([]model.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// ProductHandler serves the listing approval queue and its bulk action bar.
type ProductHandler struct {
	BaseHandler
	products productWorkflow
	listing  productLister
}

func NewProductHandler(logger *slog.Logger, products productWorkflow, listing productLister) *ProductHandler {
	return &ProductHandler{BaseHandler: BaseHandler{Logger: logger}, products: products, listing: listing}
}

// List returns listings, optionally filtered by ?status=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.ProductStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, CodeValidationError,
			"unknown product status filter")
		return
	}

	products, err := h.listing.List(r.Context(), status.Normalize())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"data": products}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

type changeProductStatusRequest struct {
	Status model.ProductStatus `json:"status"`
}

// ChangeStatus reviews a single listing.
func (h *ProductHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req changeProductStatusRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	res, err := h.products.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		h.workflowErrorResponse(w, r, err)
		return
	}

	err = h.writeJSON(w, http.StatusOK, envelope{"message": res.Message, "data": res.Data}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// Delete removes a single listing.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msg, err := h.products.Delete(r.Context(), id)
	if err != nil {
		h.workflowErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"message": msg}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

type bulkStatusRequest struct {
	IDs    []string            `json:"ids"`
	Status model.ProductStatus `json:"status"`
}

// BulkUpdateStatus applies one status to the selected rows.
func (h *ProductHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}
	if len(req.IDs) == 0 {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, "ids must not be empty")
		return
	}

	results, err := h.products.BulkUpdateStatus(r.Context(), req.IDs, req.Status)
	if err != nil {
		h.workflowErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"results": results}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDelete removes the selected rows.
func (h *ProductHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}
	if len(req.IDs) == 0 {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, "ids must not be empty")
		return
	}

	results, err := h.products.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		h.workflowErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"results": results}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// Export streams the selected (or all) products as a CSV download.
// ?ids=p1,p2 limits the export; ?columns=id,name picks columns.
func (h *ProductHandler) Export(w http.ResponseWriter, r *http.Request) {
	var (
		products []model.Product
		err      error
	)

	if raw := r.URL.Query().Get("ids"); raw != "" {
		products, err = h.listing.GetByIDs(r.Context(), strings.Split(raw, ","))
	} else {
		products, err = h.listing.List(r.Context(), "")
	}
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	var columns []string
	if raw := r.URL.Query().Get("columns"); raw != "" {
		columns = strings.Split(raw, ",")
	}

	filename := fmt.Sprintf("products-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := workflow.ExportProductsCSV(w, products, columns); err != nil {
		// Headers are already out; all we can do is log.
		h.logError(r, err)
	}
}
