package lists

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) Create(ctx context.Context, list *models.List) (*models.List, error) {

	query :=
		`INSERT INTO lists (id, title, user_id)
		 VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, list.ID, list.Title, list.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	if list.Tasks == nil {
		list.Tasks = []models.Task{}
	}

	return list, nil
}

// listWithTasksQuery joins each list with its tasks so a single round trip
// returns the fully nested result. Task columns are NULL for empty lists.
const listWithTasksQuery = `SELECT l.id, l.title, l.user_id,
       t.id, t.description, t.count, t.list_id
  FROM lists l
  LEFT JOIN tasks t ON t.list_id = l.id`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.List, error) {
	rows, err := r.db.QueryContext(ctx, listWithTasksQuery+`
 WHERE l.id = $1
 ORDER BY t.id`, id)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	found, err := scanListRows(rows)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}

	return &found[0], nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.List, error) {
	rows, err := r.db.QueryContext(ctx, listWithTasksQuery+`
 ORDER BY l.id, t.id`)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	return scanListRows(rows)
}

func (r *PostgresRepository) UpdateTitle(ctx context.Context, id, title string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE lists SET title = $2 WHERE id = $1`, id, title)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return res.RowsAffected()
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return res.RowsAffected()
}

// scanListRows groups joined rows into lists with nested tasks. Rows arrive
// ordered by list id, so grouping is a single pass.
func scanListRows(rows *sql.Rows) ([]models.List, error) {
	result := []models.List{}
	var current *models.List

	for rows.Next() {
		var (
			listID, title, ownerID sql.NullString
			taskID, descr, taskLID sql.NullString
			count                  sql.NullInt64
		)
		if err := rows.Scan(&listID, &title, &ownerID, &taskID, &descr, &count, &taskLID); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}

		if current == nil || current.ID != listID.String {
			result = append(result, models.List{
				ID:      listID.String,
				Title:   title.String,
				OwnerID: ownerID.String,
				Tasks:   []models.Task{},
			})
			current = &result[len(result)-1]
		}

		if taskID.Valid {
			current.Tasks = append(current.Tasks, models.Task{
				ID:          taskID.String,
				Description: descr.String,
				Count:       int(count.Int64),
				ListID:      taskLID.String,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}
