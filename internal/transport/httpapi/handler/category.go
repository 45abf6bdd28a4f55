package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/platform/category"
	"github.com/finbook/finbook/internal/transport/httpapi/middleware"
)

// CategoryServiceInterface defines the interface for category operations
type CategoryServiceInterface interface {
	Create(ctx context.Context, c *category.Category) error
	Get(ctx context.Context, userID, id uuid.UUID) (*category.Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]*category.Category, error)
	Update(ctx context.Context, userID uuid.UUID, c *category.Category) error
	SetHidden(ctx context.Context, userID, id uuid.UUID, hidden bool) error
	Reorder(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	service CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CategoryRequest represents a category create or update request
type CategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// CategoryResponse represents a category response
type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Hidden       bool   `json:"hidden"`
	DisplayOrder int    `json:"display_order"`
}

// CategoriesListResponse represents the response for listing categories
type CategoriesListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat := category.NewCategory(userID, req.Name, category.Kind(req.Kind))

	if err := h.service.Create(r.Context(), cat); err != nil {
		respondCategoryError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCategoryResponse(cat))
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categories, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	resp := CategoriesListResponse{Categories: make([]CategoryResponse, len(categories))}
	for i, c := range categories {
		resp.Categories[i] = toCategoryResponse(c)
	}

	respondJSON(w, http.StatusOK, resp)
}

// UpdateCategory handles PUT /categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		respondCategoryError(w, err)
		return
	}

	cat.Name = req.Name
	if req.Kind != "" {
		cat.Kind = category.Kind(req.Kind)
	}

	if err := h.service.Update(r.Context(), userID, cat); err != nil {
		respondCategoryError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCategoryResponse(cat))
}

// SetCategoryHidden handles PUT /categories/{id}/hidden
func (h *CategoryHandler) SetCategoryHidden(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var req SetHiddenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetHidden(r.Context(), userID, id, req.Hidden); err != nil {
		respondCategoryError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"hidden": req.Hidden})
}

// ReorderCategories handles PUT /categories/order
func (h *CategoryHandler) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ids := make([]uuid.UUID, len(req.IDs))
	for i, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid category ID in order list")
			return
		}
		ids[i] = id
	}

	if err := h.service.Reorder(r.Context(), userID, ids); err != nil {
		respondCategoryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCategory handles DELETE /categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		respondCategoryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondCategoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, category.ErrCategoryNotFound), errors.Is(err, category.ErrNotOwner):
		respondError(w, http.StatusNotFound, "category not found")
	case errors.Is(err, category.ErrDuplicateName):
		respondError(w, http.StatusConflict, "category name already exists")
	case errors.Is(err, category.ErrInvalidName):
		respondError(w, http.StatusBadRequest, "category name is required")
	case errors.Is(err, category.ErrInvalidKind):
		respondError(w, http.StatusBadRequest, "category kind must be income or expense")
	default:
		respondError(w, http.StatusInternalServerError, "category operation failed")
	}
}

func toCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Kind:         string(c.Kind),
		Hidden:       c.Hidden,
		DisplayOrder: c.DisplayOrder,
	}
}
