package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/finbook/finbook/internal/shared/errors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondAppError maps an application error to an HTTP response, using
// the fallback message for errors without a known code
func respondAppError(w http.ResponseWriter, err error, fallback string) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		respondError(w, http.StatusInternalServerError, fallback)
		return
	}
	respondError(w, statusForCode(appErr.Code), appErr.Message)
}

func statusForCode(code string) int {
	switch code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeBadRequest, apperrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeRateUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
