package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/platform/transaction"
	"github.com/finbook/finbook/internal/transport/httpapi/middleware"
)

// TransactionServiceInterface defines the interface for transaction operations
type TransactionServiceInterface interface {
	Create(ctx context.Context, t *transaction.Transaction) error
	Get(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error)
	Update(ctx context.Context, userID uuid.UUID, t *transaction.Transaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Settle(ctx context.Context, userID, id uuid.UUID) error
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	service TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// TransactionRequest represents a transaction create or update request.
// Amounts are minor units of the respective account's currency.
type TransactionRequest struct {
	Type                 string  `json:"type"`
	Time                 int64   `json:"time"`
	SourceAccountID      string  `json:"source_account_id"`
	SourceAmount         int64   `json:"source_amount"`
	DestinationAccountID *string `json:"destination_account_id,omitempty"`
	DestinationAmount    int64   `json:"destination_amount,omitempty"`
	CategoryID           *string `json:"category_id,omitempty"`
	Comment              string  `json:"comment"`
	Planned              bool    `json:"planned"`
}

// TransactionResponse represents a transaction response
type TransactionResponse struct {
	ID                   string  `json:"id"`
	Type                 string  `json:"type"`
	Time                 int64   `json:"time"`
	SourceAccountID      string  `json:"source_account_id"`
	SourceAmount         int64   `json:"source_amount"`
	DestinationAccountID *string `json:"destination_account_id,omitempty"`
	DestinationAmount    int64   `json:"destination_amount,omitempty"`
	CategoryID           *string `json:"category_id,omitempty"`
	Comment              string  `json:"comment"`
	Planned              bool    `json:"planned"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

// TransactionsListResponse represents the response for listing transactions
type TransactionsListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := transactionFromRequest(userID, req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Create(r.Context(), t); err != nil {
		respondTransactionError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toTransactionResponse(t))
}

// GetTransaction handles GET /transactions/{id}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	t, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		respondTransactionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTransactionResponse(t))
}

// GetTransactions handles GET /transactions
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter, err := listFilterFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	resp := TransactionsListResponse{Transactions: make([]TransactionResponse, len(txs))}
	for i, t := range txs {
		resp.Transactions[i] = toTransactionResponse(t)
	}

	respondJSON(w, http.StatusOK, resp)
}

// UpdateTransaction handles PUT /transactions/{id}
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := transactionFromRequest(userID, req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t.ID = id

	if err := h.service.Update(r.Context(), userID, t); err != nil {
		respondTransactionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTransactionResponse(t))
}

// SettleTransaction handles POST /transactions/{id}/settle
func (h *TransactionHandler) SettleTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	if err := h.service.Settle(r.Context(), userID, id); err != nil {
		respondTransactionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "settled"})
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		respondTransactionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func transactionFromRequest(userID uuid.UUID, req TransactionRequest) (*transaction.Transaction, error) {
	sourceID, err := uuid.Parse(req.SourceAccountID)
	if err != nil {
		return nil, errors.New("invalid source account ID")
	}

	now := time.Now()
	t := &transaction.Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		Type:            transaction.Type(req.Type),
		Time:            req.Time,
		SourceAccountID: sourceID,
		SourceAmount:    req.SourceAmount,
		Comment:         req.Comment,
		Planned:         req.Planned,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if req.DestinationAccountID != nil {
		destID, err := uuid.Parse(*req.DestinationAccountID)
		if err != nil {
			return nil, errors.New("invalid destination account ID")
		}
		t.DestinationAccountID = &destID
		t.DestinationAmount = req.DestinationAmount
	}

	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category ID")
		}
		t.CategoryID = &catID
	}

	return t, nil
}

func listFilterFromQuery(r *http.Request) (transaction.ListFilter, error) {
	var filter transaction.ListFilter
	q := r.URL.Query()

	for key, dst := range map[string]*int64{"start": &filter.StartTime, "end": &filter.EndTime} {
		if raw := q.Get(key); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return filter, errors.New("invalid " + key + " timestamp")
			}
			*dst = v
		}
	}

	filter.Type = transaction.Type(q.Get("type"))

	if raw := q.Get("account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid account_id")
		}
		filter.AccountID = id
	}

	if raw := q.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid category_id")
		}
		filter.CategoryID = id
	}

	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = v
	}

	if raw := q.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid offset")
		}
		filter.Offset = v
	}

	return filter, nil
}

func respondTransactionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrTransactionNotFound), errors.Is(err, transaction.ErrNotOwner):
		respondError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, transaction.ErrInvalidType),
		errors.Is(err, transaction.ErrInvalidTime),
		errors.Is(err, transaction.ErrSourceAccountRequired),
		errors.Is(err, transaction.ErrDestinationAccountRequired),
		errors.Is(err, transaction.ErrSameAccountTransfer),
		errors.Is(err, transaction.ErrNegativeAmount):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "transaction operation failed")
	}
}

func toTransactionResponse(t *transaction.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:              t.ID.String(),
		Type:            string(t.Type),
		Time:            t.Time,
		SourceAccountID: t.SourceAccountID.String(),
		SourceAmount:    t.SourceAmount,
		Comment:         t.Comment,
		Planned:         t.Planned,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.Format(time.RFC3339),
	}

	if t.DestinationAccountID != nil {
		s := t.DestinationAccountID.String()
		resp.DestinationAccountID = &s
		resp.DestinationAmount = t.DestinationAmount
	}

	if t.CategoryID != nil {
		s := t.CategoryID.String()
		resp.CategoryID = &s
	}

	return resp
}
