package profile

import "context"

// Repository defines persistence operations for profiles.
type Repository interface {
	// GetByID retrieves a profile by its ID.
	GetByID(ctx context.Context, id string) (*Profile, error)

	// GetActiveByAccountID retrieves the account's active profile. At most
	// one profile is active per account at a time. Returns a not found
	// error when none is active.
	GetActiveByAccountID(ctx context.Context, accountID string) (*Profile, error)

	// ListByAccountID lists all profiles belonging to an account.
	ListByAccountID(ctx context.Context, accountID string) ([]*Profile, error)

	// Create persists a new profile.
	Create(ctx context.Context, profile *Profile) error

	// Update persists changes to an existing profile using optimistic locking.
	Update(ctx context.Context, profile *Profile) error
}
