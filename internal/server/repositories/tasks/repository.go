// Package tasks declares the persistence contract for tasks.
// Reads eagerly include the parent list in the same query.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

// Repository defines storage operations for tasks.
type Repository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// GetByID returns one task with its parent list populated (nil for an
	// orphaned task), or common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Task, error)

	// List returns tasks with their parent lists populated. An empty
	// listID returns every task; otherwise only tasks of that list.
	List(ctx context.Context, listID string) ([]models.Task, error)

	// UpdateCount sets the completion count and reports affected rows.
	UpdateCount(ctx context.Context, id string, count int) (int64, error)

	// Delete removes the task and reports affected rows.
	Delete(ctx context.Context, id string) (int64, error)
}
