package cart

import "context"

// Store is the persistence boundary for cart snapshots. Snapshots are keyed
// by session token, so a cart lives and dies with its session.
type Store interface {
	// Load returns the persisted snapshot, or an empty cart when none exists.
	Load(ctx context.Context, sessionToken string) (Cart, error)
	Save(ctx context.Context, sessionToken string, c Cart) error
	Drop(ctx context.Context, sessionToken string) error
}
