package repomanager

import (
	"context"
	"database/sql"

	"daylist/internal/dbx"
	"daylist/internal/server/repositories/attachments"
	"daylist/internal/server/repositories/todos"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Todos(db dbx.DBTX) todos.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}
