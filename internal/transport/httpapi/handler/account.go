package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/platform/account"
	"github.com/finbook/finbook/internal/transport/httpapi/middleware"
	"github.com/finbook/finbook/pkg/money"
)

// AccountServiceInterface defines the interface for account operations
type AccountServiceInterface interface {
	Create(ctx context.Context, a *account.Account) error
	Get(ctx context.Context, userID, id uuid.UUID) (*account.Account, error)
	List(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)
	Update(ctx context.Context, userID uuid.UUID, a *account.Account) error
	SetHidden(ctx context.Context, userID, id uuid.UUID, hidden bool) error
	Reorder(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	service AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

// CreateAccountRequest represents the account creation request
type CreateAccountRequest struct {
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	Balance     int64  `json:"balance"`
	IsLiability bool   `json:"is_liability"`
}

// UpdateAccountRequest represents the account update request
type UpdateAccountRequest struct {
	Name        string `json:"name"`
	IsLiability bool   `json:"is_liability"`
}

// SetHiddenRequest represents the visibility toggle request
type SetHiddenRequest struct {
	Hidden bool `json:"hidden"`
}

// ReorderRequest represents the reorder request
type ReorderRequest struct {
	IDs []string `json:"ids"`
}

// AccountResponse represents an account response
type AccountResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Currency       string `json:"currency"`
	Balance        int64  `json:"balance"`
	BalanceDisplay string `json:"balance_display"`
	IsLiability    bool   `json:"is_liability"`
	Hidden         bool   `json:"hidden"`
	DisplayOrder   int    `json:"display_order"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// AccountsListResponse represents the response for listing accounts
type AccountsListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// CreateAccount handles POST /accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc := account.NewAccount(userID, req.Name, req.Currency)
	acc.Balance = req.Balance
	acc.IsLiability = req.IsLiability

	if err := h.service.Create(r.Context(), acc); err != nil {
		respondAccountError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toAccountResponse(acc))
}

// GetAccounts handles GET /accounts
func (h *AccountHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	accounts, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}

	resp := AccountsListResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i, a := range accounts {
		resp.Accounts[i] = toAccountResponse(a)
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetAccount handles GET /accounts/{id}
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account ID")
		return
	}

	acc, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		respondAccountError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toAccountResponse(acc))
}

// UpdateAccount handles PUT /accounts/{id}
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account ID")
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		respondAccountError(w, err)
		return
	}

	acc.Name = req.Name
	acc.IsLiability = req.IsLiability

	if err := h.service.Update(r.Context(), userID, acc); err != nil {
		respondAccountError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toAccountResponse(acc))
}

// SetAccountHidden handles PUT /accounts/{id}/hidden
func (h *AccountHandler) SetAccountHidden(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account ID")
		return
	}

	var req SetHiddenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetHidden(r.Context(), userID, id, req.Hidden); err != nil {
		respondAccountError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"hidden": req.Hidden})
}

// ReorderAccounts handles PUT /accounts/order
func (h *AccountHandler) ReorderAccounts(w http.ResponseWriter, r *http.Request) {
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
			respondError(w, http.StatusBadRequest, "invalid account ID in order")
			return
		}
		ids[i] = id
	}

	if err := h.service.Reorder(r.Context(), userID, ids); err != nil {
		respondAccountError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteAccount handles DELETE /accounts/{id}
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account ID")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		respondAccountError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondAccountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrAccountNotFound), errors.Is(err, account.ErrNotOwner):
		respondError(w, http.StatusNotFound, "account not found")
	case errors.Is(err, account.ErrDuplicateName):
		respondError(w, http.StatusConflict, "account name already exists")
	case errors.Is(err, account.ErrInvalidName):
		respondError(w, http.StatusBadRequest, "account name is required")
	case errors.Is(err, account.ErrInvalidCurrency):
		respondError(w, http.StatusBadRequest, "invalid currency code")
	case errors.Is(err, account.ErrAccountHasActivity):
		respondError(w, http.StatusConflict, "account has transactions and cannot be deleted")
	default:
		respondError(w, http.StatusInternalServerError, "account operation failed")
	}
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID.String(),
		Name:           a.Name,
		Currency:       a.Currency,
		Balance:        a.Balance,
		BalanceDisplay: money.Format(a.Balance, a.Currency),
		IsLiability:    a.IsLiability,
		Hidden:         a.Hidden,
		DisplayOrder:   a.DisplayOrder,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}
