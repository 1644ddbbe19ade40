// Package users declares the persistence contract for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

// Repository defines storage operations for users. Implementations must
// surface the email unique-constraint violation as common.ErrorEmailExists
// so that concurrent signups resolve to exactly one winner.
type Repository interface {
	// Create persists a new user and fills in storage-assigned fields.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or
	// common.ErrorNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound
	// when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
