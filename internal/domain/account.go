package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Account field limits.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
	EmailMaxLength    = 100
	PasswordMinLength = 6
	// PasswordMaxLength is bcrypt's input limit in bytes.
	PasswordMaxLength = 72
)

var validate = validator.New()

// Account is a registered user. It owns zero or more tasks.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose the credential hash
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAccount creates an Account from an already hashed password.
// Both timestamps are set to now.
func NewAccount(username, email, passwordHash string, now time.Time) (*Account, error) {
	now = now.UTC()
	account := &Account{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

// Validate checks the stored form of an account.
func (a *Account) Validate() error {
	var errs ValidationErrors
	if a.ID == uuid.Nil {
		errs = append(errs, NewValidationError("id", "is required", ErrInvalidID))
	}
	errs = append(errs, validateUsername(a.Username)...)
	errs = append(errs, validateEmail(a.Email)...)
	if a.PasswordHash == "" {
		errs = append(errs, NewValidationError("password_hash", "is required", nil))
	}
	return errs.orNil()
}

// ValidateRegistration checks the plaintext registration input before any
// hashing or storage happens.
func ValidateRegistration(username, email, password string) error {
	var errs ValidationErrors
	errs = append(errs, validateUsername(username)...)
	errs = append(errs, validateEmail(email)...)
	errs = append(errs, validatePassword(password)...)
	return errs.orNil()
}

func validateUsername(username string) ValidationErrors {
	n := utf8.RuneCountInString(username)
	switch {
	case strings.TrimSpace(username) == "":
		return ValidationErrors{NewValidationError("username", "is required", nil)}
	case n < UsernameMinLength || n > UsernameMaxLength:
		return ValidationErrors{NewValidationError("username", "must be between 3 and 50 characters", nil)}
	}
	return nil
}

func validateEmail(email string) ValidationErrors {
	switch {
	case strings.TrimSpace(email) == "":
		return ValidationErrors{NewValidationError("email", "is required", nil)}
	case utf8.RuneCountInString(email) > EmailMaxLength:
		return ValidationErrors{NewValidationError("email", "must be at most 100 characters", nil)}
	case validate.Var(email, "email") != nil:
		return ValidationErrors{NewValidationError("email", "must be a valid email address", nil)}
	}
	return nil
}

func validatePassword(password string) ValidationErrors {
	switch {
	case password == "":
		return ValidationErrors{NewValidationError("password", "is required", nil)}
	case len(password) < PasswordMinLength:
		return ValidationErrors{NewValidationError("password", "must be at least 6 characters", nil)}
	case len(password) > PasswordMaxLength:
		return ValidationErrors{NewValidationError("password", "must be at most 72 bytes", nil)}
	}
	return nil
}
