package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/goalbingo/internal/dbx"
	"github.com/dmitrijs2005/goalbingo/internal/server/repositories/boards"
	"github.com/dmitrijs2005/goalbingo/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/goalbingo/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or a
// transaction, so services can pick either per call.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Boards(db dbx.DBTX) boards.Repository
}
