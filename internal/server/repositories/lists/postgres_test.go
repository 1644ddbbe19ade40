package lists

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func joinedColumns() []string {
	return []string{"id", "title", "user_id", "t_id", "t_description", "t_count", "t_list_id"}
}

const joinQuery = `(?s)SELECT\s+l\.id,\s*l\.title,\s*l\.user_id,\s*t\.id,\s*t\.description,\s*t\.count,\s*t\.list_id\s+FROM\s+lists\s+l\s+LEFT\s+JOIN\s+tasks\s+t\s+ON\s+t\.list_id\s*=\s*l\.id`

func TestGetByID_NestsTasksInOneQuery(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(joinedColumns()).
		AddRow("l-1", "Groceries", "u-1", "t-1", "Milk", 0, "l-1").
		AddRow("l-1", "Groceries", "u-1", "t-2", "Eggs", 3, "l-1")
	mock.ExpectQuery(joinQuery).WithArgs("l-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "l-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Title != "Groceries" || got.OwnerID != "u-1" {
		t.Fatalf("unexpected list: %+v", got)
	}
	if len(got.Tasks) != 2 {
		t.Fatalf("expected both tasks nested in one call, got %d", len(got.Tasks))
	}
	if got.Tasks[0].Description != "Milk" || got.Tasks[1].Count != 3 {
		t.Fatalf("unexpected tasks: %+v", got.Tasks)
	}
}

func TestGetByID_EmptyListHasEmptyTasks(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(joinedColumns()).
		AddRow("l-1", "Groceries", "u-1", nil, nil, nil, nil)
	mock.ExpectQuery(joinQuery).WithArgs("l-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "l-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Tasks == nil || len(got.Tasks) != 0 {
		t.Fatalf("expected empty non-nil Tasks, got %#v", got.Tasks)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(joinQuery).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(joinedColumns()))

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListAll_GroupsRowsByList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(joinedColumns()).
		AddRow("l-1", "Groceries", "u-1", "t-1", "Milk", 0, "l-1").
		AddRow("l-1", "Groceries", "u-1", "t-2", "Eggs", 1, "l-1").
		AddRow("l-2", "Chores", "u-2", nil, nil, nil, nil)
	mock.ExpectQuery(joinQuery).WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(got))
	}
	if len(got[0].Tasks) != 2 || len(got[1].Tasks) != 0 {
		t.Fatalf("unexpected task grouping: %+v", got)
	}
}

func TestCreate_ReturnsListWithEmptyTasks(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+lists`).
		WithArgs("l-1", "Groceries", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.List{ID: "l-1", Title: "Groceries", OwnerID: "u-1"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Tasks == nil || len(got.Tasks) != 0 {
		t.Fatalf("expected empty non-nil Tasks, got %#v", got.Tasks)
	}
}

func TestUpdateTitle_ReportsAffectedRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+lists\s+SET\s+title`).
		WithArgs("l-1", "Renamed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.UpdateTitle(context.Background(), "l-1", "Renamed")
	if err != nil {
		t.Fatalf("UpdateTitle error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 affected row, got %d", n)
	}
}

func TestDelete_NoErrorWhenTasksStillReference(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// Advisory integrity: removing a list never touches tasks or
	// association rows, and the delete succeeds regardless.
	mock.ExpectExec(`DELETE\s+FROM\s+lists`).
		WithArgs("l-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Delete(context.Background(), "l-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 affected row, got %d", n)
	}
}
