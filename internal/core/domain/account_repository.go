package domain

import "context"

type AccountRepository interface {
	// Create persists a new account. Returns ErrUsernameTaken on a duplicate username.
	Create(ctx context.Context, account *Account) error

	// GetByUsername retrieves an account by its unique username.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// GetByID retrieves an account by its identifier.
	GetByID(ctx context.Context, id string) (*Account, error)

	// UpdateProfile writes the profile attributes of the account.
	// It never touches current_day.
	UpdateProfile(ctx context.Context, account *Account) error

	// IncrementCurrentDay atomically adds one to the account's current day
	// and returns the new value. Implementations must not read-modify-write.
	IncrementCurrentDay(ctx context.Context, id string) (int, error)
}
