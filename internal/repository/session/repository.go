package session

import (
	"context"

	"storefront/internal/guestcart"
)

// Repository binds guest session tokens to per-session cart snapshot stores.
// Each token owns exactly one cart key; the returned store reads and writes
// that key only.
type Repository interface {
	ForToken(token string) guestcart.Store
	DeleteExpired(ctx context.Context) (int64, error)
}
