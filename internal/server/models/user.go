// Package models defines the domain entities of listkeeper and their
// validation rules. Entities validate their own fields before persistence;
// cross-row invariants (email uniqueness) are enforced by the storage layer.
package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
)

// User is an account holder. PasswordHash always contains the one-way digest
// of the signup password; the plaintext is discarded right after hashing and
// never persisted or logged.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the only user view exposed outside the service layer.
// It deliberately carries no credential material.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Public returns the externally visible view of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Email: u.Email}
}

// Validate enforces required fields and email syntax. Email uniqueness is
// left to the storage layer's unique constraint so that concurrent signups
// resolve to exactly one winner.
func (u *User) Validate() error {
	if strings.TrimSpace(u.FirstName) == "" {
		return common.NewValidationError("firstName", "required")
	}
	if strings.TrimSpace(u.LastName) == "" {
		return common.NewValidationError("lastName", "required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return common.NewValidationError("email", "required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return common.NewValidationError("email", "must be a valid email address")
	}
	return nil
}
