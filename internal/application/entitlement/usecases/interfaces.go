package usecases

import (
	"context"
	"time"

	"github.com/fakturio-inc/fakturio/internal/domain/entitlement"
)

// UsageCounter counts how many quota-relevant records an account created in
// a window. Counts are computed live against the canonical store on every
// check; they are never cached or maintained as counters.
type UsageCounter interface {
	// CountSince counts records for the quota key created at or after the
	// given instant.
	CountSince(ctx context.Context, accountID string, key entitlement.QuotaKey, since time.Time) (int64, error)
}
