// Package repomanager groups the per-aggregate repositories behind a single
// factory so services can obtain repositories bound to either a plain
// connection or an open transaction (any dbx.DBTX).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/associations"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/lists"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to db and applies schema
// migrations.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Lists(db dbx.DBTX) lists.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Associations(db dbx.DBTX) associations.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
