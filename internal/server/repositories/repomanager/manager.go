package repomanager

import (
	"context"
	"database/sql"

	"github.com/antonk9218/paybuddy/internal/dbx"
	"github.com/antonk9218/paybuddy/internal/server/repositories/connections"
	"github.com/antonk9218/paybuddy/internal/server/repositories/transactions"
	"github.com/antonk9218/paybuddy/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Connections(db dbx.DBTX) connections.Repository
	Transactions(db dbx.DBTX) transactions.Repository
}
