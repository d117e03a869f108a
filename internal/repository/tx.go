package repository

import "context"

// TxManager groups repository writes into one transactional scope.
// Repositories pick the transaction up from the context passed to fn.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
