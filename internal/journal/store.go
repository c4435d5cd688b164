package journal

import "context"

// Store defines the journal operations the migration depends on.
// Consumers should depend on this interface rather than the concrete *DB type.
type Store interface {
	Begin(ctx context.Context, steps []Step) (*Swap, error)
	SetDone(ctx context.Context, swapID int64, seq int, done bool) error
	SetStatus(ctx context.Context, swapID int64, status Status) error
	Pending(ctx context.Context) (*Swap, error)
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
