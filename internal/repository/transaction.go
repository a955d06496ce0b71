package repository

import "context"

// TxManager runs fn in a single transaction. Repositories called with the
// context passed to fn take part in it; fn's error rolls everything back.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
