package associations

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/listkeeper/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AddListMember(ctx context.Context, userID, listID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO students_lists (student_id, list_id) VALUES ($1, $2)`, userID, listID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListMemberIDs(ctx context.Context, listID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT student_id FROM students_lists WHERE list_id = $1`, listID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

func (r *PostgresRepository) AddCompletion(ctx context.Context, userID, taskID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO completes (user_id, task_id) VALUES ($1, $2)`, userID, taskID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) TaskCompleterIDs(ctx context.Context, taskID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM completes WHERE task_id = $1`, taskID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}
