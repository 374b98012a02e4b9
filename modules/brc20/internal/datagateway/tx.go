package datagateway

import "context"

type Tx interface {
	// Commit commits the transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction. Calling it after Commit is a no-op.
	Rollback(ctx context.Context) error
}
