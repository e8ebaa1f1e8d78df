package usecases

import (
	"context"
	"time"

	"github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
)

// BillingPrice is one row of the processor price table.
type BillingPrice struct {
	PriceID string
	// Amount is the recurring price per billing period in the smallest
	// currency unit.
	Amount int64
}

// PriceCatalog maps plan selections to processor prices. Shipped as code;
// selections absent from the catalog are a validation error, never a
// processor call.
type PriceCatalog interface {
	PriceFor(selection valueobjects.PlanSelection) (BillingPrice, bool)
	SelectionFor(priceID string) (valueobjects.PlanSelection, bool)
}

// GatewaySubscription is the processor's view of a subscription, mapped to
// domain vocabulary by the gateway implementation.
type GatewaySubscription struct {
	ID                 string
	Status             valueobjects.SubscriptionStatus
	PriceID            string
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
}

// BillingGateway is the engine's contract with the external payment
// processor. Every call is synchronous and is treated as the unit of work:
// on error the caller mutates no local state.
type BillingGateway interface {
	// GetSubscription fetches current processor state without mutating it.
	GetSubscription(ctx context.Context, subscriptionRef string) (GatewaySubscription, error)

	// SwapPrice replaces the price on the subscription's single item and
	// forces an immediate prorated invoice. Used for upgrades.
	SwapPrice(ctx context.Context, subscriptionRef, priceID string) (GatewaySubscription, error)

	// ScheduleDowngrade creates or updates a two-phase schedule: the
	// current price through the end of the running period, the target
	// price from then on. An existing schedule is updated in place so
	// retries and repeated downgrades never stack phases. Returns the
	// processor state and the schedule reference.
	ScheduleDowngrade(ctx context.Context, subscriptionRef, targetPriceID string) (GatewaySubscription, string, error)

	// Cancel ends the subscription immediately or flags it to lapse at
	// period end.
	Cancel(ctx context.Context, subscriptionRef string, immediate bool) (GatewaySubscription, error)

	// Reactivate clears the end-of-period cancellation flag.
	Reactivate(ctx context.Context, subscriptionRef string) (GatewaySubscription, error)
}
