package subscription

import "context"

// Repository defines persistence operations for subscriptions.
type Repository interface {
	// GetByID retrieves a subscription by its ID.
	GetByID(ctx context.Context, id string) (*Subscription, error)

	// GetByAccountID retrieves the subscription belonging to an account.
	GetByAccountID(ctx context.Context, accountID string) (*Subscription, error)

	// GetByStripeSubscriptionID retrieves a subscription by its processor
	// reference.
	GetByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*Subscription, error)

	// GetMostRecentBillable returns the most recently updated subscription
	// for an account with status trial, active or past_due. Used as the
	// billing-cycle anchor for quota counting. Returns a not found error
	// when none exists.
	GetMostRecentBillable(ctx context.Context, accountID string) (*Subscription, error)

	// Create persists a new subscription.
	Create(ctx context.Context, sub *Subscription) error

	// Update persists changes to an existing subscription using optimistic
	// locking.
	Update(ctx context.Context, sub *Subscription) error
}
