package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onemarketph/backoffice/internal/model"
	"github.com/onemarketph/backoffice/internal/store"
)

type categoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, id, name string, parentID *string) (*model.Category, error)
	Rename(ctx context.Context, id, name string) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}

// CategoryHandler manages the product category tree.
type CategoryHandler struct {
	BaseHandler
	categories categoryStore
}

func NewCategoryHandler(logger *slog.Logger, categories categoryStore) *CategoryHandler {
	return &CategoryHandler{BaseHandler: BaseHandler{Logger: logger}, categories: categories}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"data": categories}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

type categoryRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}
	if req.Name == "" {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, "name must not be empty")
		return
	}

	category, err := h.categories.Create(r.Context(), uuid.NewString(), req.Name, req.ParentID)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusCreated, envelope{"data": category}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *CategoryHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req categoryRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}
	if req.Name == "" {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, "name must not be empty")
		return
	}

	category, err := h.categories.Rename(r.Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.errorResponse(w, r, http.StatusNotFound, CodeNotFound, "category not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"data": category}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.categories.Delete(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.errorResponse(w, r, http.StatusNotFound, CodeNotFound, "category not found")
	case errors.Is(err, store.ErrReferenced):
		h.errorResponse(w, r, http.StatusConflict, CodeReferenced,
			"category still has products or subcategories and cannot be deleted")
	case err != nil:
		h.serverErrorResponse(w, r, err)
	default:
		if err := h.writeJSON(w, http.StatusOK, envelope{"message": "Category deleted successfully"}, nil); err != nil {
			h.serverErrorResponse(w, r, err)
		}
	}
}
