package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/memoria/internal/dbx"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/albums"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/events"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/messages"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/settings"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// service code runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Albums(db dbx.DBTX) albums.Repository
	Messages(db dbx.DBTX) messages.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Events(db dbx.DBTX) events.Repository
	Settings(db dbx.DBTX) settings.Repository
}
