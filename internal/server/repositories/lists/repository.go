// Package lists declares the persistence contract for to-do lists.
// All reads eagerly include the tasks of each list in a single query.
package lists

import (
	"context"

	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

// Repository defines storage operations for lists.
type Repository interface {
	// Create persists a new list.
	Create(ctx context.Context, list *models.List) (*models.List, error)

	// GetByID returns one list with its tasks populated, or
	// common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.List, error)

	// ListAll returns every list with its tasks populated.
	ListAll(ctx context.Context) ([]models.List, error)

	// UpdateTitle sets the title of the list and reports affected rows.
	UpdateTitle(ctx context.Context, id, title string) (int64, error)

	// Delete removes the list and reports affected rows. Tasks and
	// association rows referencing the list are left untouched.
	Delete(ctx context.Context, id string) (int64, error)
}
