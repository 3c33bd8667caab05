package shared

import "context"

// TransactionExecutor runs fn inside a database transaction.
// Repositories called with the context passed to fn take part in the transaction.
// The transaction is rolled back when fn returns an error or panics.
type TransactionExecutor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
