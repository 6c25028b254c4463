package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account that owns contacts, tasks, appointments, and projects.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const minPasswordLength = 8

// NewUser validates credentials and returns a user with a fresh uuid.
// passwordHash must already be hashed; raw password policy is checked with
// ValidatePassword before hashing.
func NewUser(email, passwordHash, name string) (*User, error) {
	validEmail, err := validateNotBlank(email, "email")
	if err != nil {
		return nil, err
	}
	if !strings.Contains(validEmail, "@") {
		return nil, invalid("email", "must be a valid email address")
	}
	if passwordHash == "" {
		return nil, invalid("password", "must not be null or blank")
	}
	validName, err := validateNotBlank(name, "name")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(validEmail),
		PasswordHash: passwordHash,
		Name:         validName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidatePassword enforces the raw password policy before hashing.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return invalid("password", "must be at least 8 characters")
	}
	return nil
}
