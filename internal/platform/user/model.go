package user

import (
	"fmt"
	"regexp"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents a registered user. DefaultCurrency is the reporting
// currency all dashboard figures are expressed in.
type User struct {
	ID              uuid.UUID
	Email           string
	PasswordHash    string
	DefaultCurrency string
	FirstDayOfWeek  time.Weekday
	CreatedAt       time.Time
	UpdatedAt       time.Time
	LastLoginAt     *time.Time
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate validates the user fields
func (u *User) Validate() error {
	if u.Email == "" || !emailPattern.MatchString(u.Email) {
		return ErrInvalidEmail
	}

	if u.PasswordHash == "" {
		return ErrInvalidPasswordHash
	}

	if money.GetCurrency(u.DefaultCurrency) == nil {
		return ErrInvalidCurrency
	}

	return nil
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword checks the provided password against the stored hash
func (u *User) CheckPassword(password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return ErrInvalidPassword
		}
		return fmt.Errorf("failed to check password: %w", err)
	}
	return nil
}

// UpdateLastLogin updates the last login timestamp
func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}
