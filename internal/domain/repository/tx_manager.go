package repository

import "context"

// TransactionManager runs a function inside a database transaction. Every
// repository call made with the context it passes to fn joins the same
// transaction, so read-then-write sequences (numbering counts, the
// payment-completion check) execute serialized.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}
