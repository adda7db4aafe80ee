package domain

import (
	"context"
	"time"
)

// Session is the request-scoped identity resolved from a bearer token.
// It carries no account snapshot: the current day is always
// re-read from the account store.
type Session struct {
	AccountID string
	TokenID   string
	ExpiresAt time.Time
}

type RevocationStore interface {
	// Revoke marks the token id as unusable for ttl.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
