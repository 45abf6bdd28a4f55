package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook/pkg/logger"
)

// DefaultReportingCurrency is assigned to new users who do not pick one
const DefaultReportingCurrency = "USD"

// Service handles user business logic
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a new user service
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.WithField("component", "user"),
	}
}

// Register registers a new user with the given reporting currency
func (s *Service) Register(ctx context.Context, email, password, defaultCurrency string) (*User, error) {
	if defaultCurrency == "" {
		defaultCurrency = DefaultReportingCurrency
	}

	exists, err := s.repo.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check if user exists: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	now := time.Now()
	u := &User{
		ID:              uuid.New(),
		Email:           email,
		DefaultCurrency: defaultCurrency,
		FirstDayOfWeek:  time.Monday,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// Login authenticates a user with email and password
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			// Do not reveal whether the account exists
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := u.CheckPassword(password); err != nil {
		return nil, err
	}

	u.UpdateLastLogin()
	if err := s.repo.Update(ctx, u); err != nil {
		// Non-critical, the login itself succeeded
		s.log.Warn("failed to update last login", "error", err)
	}

	return u, nil
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// SetDefaultCurrency changes the user's reporting currency
func (s *Service) SetDefaultCurrency(ctx context.Context, id uuid.UUID, currency string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	u.DefaultCurrency = currency
	u.UpdatedAt = time.Now()
	if err := u.Validate(); err != nil {
		return err
	}

	return s.repo.Update(ctx, u)
}
