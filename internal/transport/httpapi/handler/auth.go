package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/platform/user"
	"github.com/finbook/finbook/internal/transport/httpapi/middleware"
)

// UserServiceInterface defines the interface for user operations needed by AuthHandler
type UserServiceInterface interface {
	Register(ctx context.Context, email, password, defaultCurrency string) (*user.User, error)
	Login(ctx context.Context, email, password string) (*user.User, error)
	SetDefaultCurrency(ctx context.Context, id uuid.UUID, currency string) error
}

// JWTServiceInterface defines the interface for JWT operations
type JWTServiceInterface interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userService UserServiceInterface
	jwtService  JWTServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService UserServiceInterface, jwtService JWTServiceInterface) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	DefaultCurrency string `json:"default_currency"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo represents user information (without sensitive data)
type UserInfo struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	DefaultCurrency string `json:"default_currency"`
}

// Register handles user registration (POST /auth/register)
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "password is required")
		return
	}

	registeredUser, err := h.userService.Register(r.Context(), req.Email, req.Password, req.DefaultCurrency)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserAlreadyExists):
			respondError(w, http.StatusConflict, "user with this email already exists")
		case errors.Is(err, user.ErrPasswordTooShort):
			respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		case errors.Is(err, user.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "invalid email address")
		case errors.Is(err, user.ErrInvalidCurrency):
			respondError(w, http.StatusBadRequest, "invalid default currency")
		default:
			respondError(w, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	token, err := h.jwtService.GenerateToken(registeredUser.ID, registeredUser.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Token: token,
		User:  userInfo(registeredUser),
	})
}

// Login handles user login (POST /auth/login)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "password is required")
		return
	}

	authenticatedUser, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidPassword) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	token, err := h.jwtService.GenerateToken(authenticatedUser.ID, authenticatedUser.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  userInfo(authenticatedUser),
	})
}

// SetCurrencyRequest represents the default currency update body
type SetCurrencyRequest struct {
	Currency string `json:"currency"`
}

// SetDefaultCurrency updates the caller's reporting currency (PUT /settings/currency)
func (h *AuthHandler) SetDefaultCurrency(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req SetCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Currency == "" {
		respondError(w, http.StatusBadRequest, "currency is required")
		return
	}

	if err := h.userService.SetDefaultCurrency(r.Context(), userID, req.Currency); err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCurrency):
			respondError(w, http.StatusBadRequest, "invalid currency code")
		case errors.Is(err, user.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "user not found")
		default:
			respondError(w, http.StatusInternalServerError, "failed to update currency")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"currency": req.Currency})
}

func userInfo(u *user.User) *UserInfo {
	return &UserInfo{
		ID:              u.ID.String(),
		Email:           u.Email,
		DefaultCurrency: u.DefaultCurrency,
	}
}
