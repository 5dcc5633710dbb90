package transaction

import "context"

// Manager runs fn atomically. Repositories called with the ctx passed to fn join the transaction.
type Manager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
