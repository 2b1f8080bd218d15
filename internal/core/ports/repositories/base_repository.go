package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for database transaction management.
// Every multi-statement write in the system runs through these: all
// statements commit together or roll back together.
type TransactionManager interface {
	// Begin starts a new database transaction bound to the acting user:
	// the connection-local current-user marker is set before any statement
	// runs in the transaction's scope.
	Begin(ctx context.Context, actingUserID string) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}
