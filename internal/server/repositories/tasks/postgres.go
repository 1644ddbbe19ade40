package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (id, description, count, list_id)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query, task.ID, task.Description, task.Count, task.ListID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return task, nil
}

// taskWithListQuery joins each task with its parent list. List columns are
// NULL for orphaned tasks (advisory integrity allows them).
const taskWithListQuery = `SELECT t.id, t.description, t.count, t.list_id,
       l.id, l.title, l.user_id
  FROM tasks t
  LEFT JOIN lists l ON l.id = t.list_id`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, taskWithListQuery+`
 WHERE t.id = $1`, id)

	task, err := scanTaskRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) List(ctx context.Context, listID string) ([]models.Task, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if listID == "" {
		rows, err = r.db.QueryContext(ctx, taskWithListQuery+`
 ORDER BY t.id`)
	} else {
		rows, err = r.db.QueryContext(ctx, taskWithListQuery+`
 WHERE t.list_id = $1
 ORDER BY t.id`, listID)
	}
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	result := []models.Task{}
	for rows.Next() {
		task, err := scanTaskRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateCount(ctx context.Context, id string, count int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET count = $2 WHERE id = $1`, id, count)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return res.RowsAffected()
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return res.RowsAffected()
}

func scanTaskRow(scan func(dest ...any) error) (*models.Task, error) {
	var (
		task                   models.Task
		listID, title, ownerID sql.NullString
	)
	if err := scan(&task.ID, &task.Description, &task.Count, &task.ListID,
		&listID, &title, &ownerID); err != nil {
		return nil, err
	}

	if listID.Valid {
		task.List = &models.List{
			ID:      listID.String,
			Title:   title.String,
			OwnerID: ownerID.String,
		}
	}

	return &task, nil
}
