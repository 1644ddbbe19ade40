package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskService provides task operations. As with lists, mutations are keyed
// by id only and do not check ownership of the parent list.
type TaskService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repos: m}
}

// List returns tasks with their parent list nested. An empty listID returns
// every task.
func (s *TaskService) List(ctx context.Context, listID string) ([]models.Task, error) {
	result, err := s.repos.Tasks(s.db).List(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("error fetching tasks: %w", err)
	}
	return result, nil
}

// Create adds a task to an existing list. The parent list is checked
// explicitly: a missing list yields common.ErrorListNotFound and no task
// row is written.
func (s *TaskService) Create(ctx context.Context, listID, description string, count int) (*models.Task, error) {

	if _, err := s.repos.Lists(s.db).GetByID(ctx, listID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorListNotFound
		}
		return nil, fmt.Errorf("error checking list: %w", err)
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		Description: description,
		Count:       count,
		ListID:      listID,
	}

	task, err := s.repos.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return task, nil
}

// UpdateCount parses raw as an integer and stores it as the completion
// count. Non-numeric input is rejected with common.ErrorNotANumber and
// nothing is written. An unknown id yields common.ErrorTaskNotFound.
func (s *TaskService) UpdateCount(ctx context.Context, id, raw string) (*models.Task, error) {

	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, common.ErrorNotANumber
	}

	var updated *models.Task

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Tasks(tx)

		affected, err := repo.UpdateCount(ctx, id, count)
		if err != nil {
			return fmt.Errorf("error updating task: %w", err)
		}
		if affected == 0 {
			return common.ErrorTaskNotFound
		}

		updated, err = repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("error fetching updated task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the task by id and returns the number of deleted rows.
func (s *TaskService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.repos.Tasks(s.db).Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("error deleting task: %w", err)
	}
	return n, nil
}

// Complete records that the user has engaged with the task. Completion rows
// are advisory and carry no count or timestamp; repeated completions insert
// repeated rows.
func (s *TaskService) Complete(ctx context.Context, userID, taskID string) error {
	if err := s.repos.Associations(s.db).AddCompletion(ctx, userID, taskID); err != nil {
		return fmt.Errorf("error recording completion: %w", err)
	}
	return nil
}

// Completers returns the user ids recorded against the task.
func (s *TaskService) Completers(ctx context.Context, taskID string) ([]string, error) {
	ids, err := s.repos.Associations(s.db).TaskCompleterIDs(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("error fetching completions: %w", err)
	}
	return ids, nil
}
