package account

import "context"

// Repository defines persistence operations for accounts.
type Repository interface {
	// GetByID retrieves an account by its ID.
	GetByID(ctx context.Context, id string) (*Account, error)

	// GetByEmail retrieves an account by its normalized email.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// Create persists a new account.
	Create(ctx context.Context, account *Account) error

	// Update persists changes to an existing account using optimistic locking.
	Update(ctx context.Context, account *Account) error
}
