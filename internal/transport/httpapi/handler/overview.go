package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/forecast"
	"github.com/finbook/finbook/internal/module/overview"
	"github.com/finbook/finbook/internal/transport/httpapi/middleware"
)

// OverviewServiceInterface defines the interface for overview operations
type OverviewServiceInterface interface {
	Forecast(ctx context.Context, userID uuid.UUID, req overview.ForecastRequest) (*overview.ForecastResponse, error)
	Summarize(ctx context.Context, userID uuid.UUID, now time.Time) (*overview.Summary, error)
}

// OverviewHandler handles dashboard overview HTTP requests
type OverviewHandler struct {
	service OverviewServiceInterface
}

// NewOverviewHandler creates a new overview handler
func NewOverviewHandler(service OverviewServiceInterface) *OverviewHandler {
	return &OverviewHandler{service: service}
}

// GetSummary handles GET /overview
func (h *OverviewHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.service.Summarize(r.Context(), userID, time.Now())
	if err != nil {
		respondAppError(w, err, "failed to build summary")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetForecast handles GET /overview/forecast
//
// Query parameters: data_start and data_end bound the loaded ledger,
// display_start and display_end narrow the returned series (defaulting
// to the data window), and excluded is a comma-separated list of
// account IDs to leave out of the balance math.
func (h *OverviewHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	req, err := forecastRequestFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Forecast(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, forecast.ErrInvalidWindow) {
			respondError(w, http.StatusBadRequest, "window end precedes start")
			return
		}
		respondAppError(w, err, "failed to build forecast")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func forecastRequestFromQuery(r *http.Request) (overview.ForecastRequest, error) {
	var req overview.ForecastRequest
	q := r.URL.Query()

	fields := map[string]*int64{
		"data_start":    &req.DataStart,
		"data_end":      &req.DataEnd,
		"display_start": &req.DisplayStart,
		"display_end":   &req.DisplayEnd,
	}
	for key, dst := range fields {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, errors.New("invalid " + key + " timestamp")
		}
		*dst = v
	}

	if req.DataStart == 0 || req.DataEnd == 0 {
		return req, errors.New("data_start and data_end are required")
	}

	if raw := q.Get("excluded"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return req, errors.New("invalid excluded account ID")
			}
			req.ExcludedAccountIDs = append(req.ExcludedAccountIDs, id)
		}
	}

	return req, nil
}
