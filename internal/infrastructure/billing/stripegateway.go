package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	stripesub "github.com/stripe/stripe-go/v82/subscription"
	stripeschedule "github.com/stripe/stripe-go/v82/subscriptionschedule"

	"github.com/fakturio-inc/fakturio/internal/application/subscription/usecases"
	vo "github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
	sharedConfig "github.com/fakturio-inc/fakturio/internal/shared/config"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

// StripeGateway implements the billing gateway against the Stripe API.
type StripeGateway struct {
	logger logger.Interface
}

func NewStripeGateway(cfg *sharedConfig.StripeConfig, logger logger.Interface) *StripeGateway {
	stripe.Key = cfg.SecretKey
	return &StripeGateway{logger: logger}
}

func (g *StripeGateway) GetSubscription(ctx context.Context, subscriptionRef string) (usecases.GatewaySubscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := stripesub.Get(subscriptionRef, params)
	if err != nil {
		return usecases.GatewaySubscription{}, g.processorError("failed to fetch subscription", err)
	}
	return mapSubscription(sub)
}

// SwapPrice replaces the price on the subscription's single item and invoices
// the proration immediately.
func (g *StripeGateway) SwapPrice(ctx context.Context, subscriptionRef, priceID string) (usecases.GatewaySubscription, error) {
	current, err := g.fetch(ctx, subscriptionRef)
	if err != nil {
		return usecases.GatewaySubscription{}, err
	}
	item, err := singleItem(current)
	if err != nil {
		return usecases.GatewaySubscription{}, err
	}

	params := &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(item.ID),
				Price: stripe.String(priceID),
			},
		},
		ProrationBehavior: stripe.String(string(stripe.SubscriptionSchedulePhaseProrationBehaviorAlwaysInvoice)),
	}
	params.Context = ctx

	updated, err := stripesub.Update(subscriptionRef, params)
	if err != nil {
		return usecases.GatewaySubscription{}, g.processorError("failed to swap subscription price", err)
	}

	g.logger.Infow("stripe price swapped", "subscription", subscriptionRef, "price", priceID)
	return mapSubscription(updated)
}

// ScheduleDowngrade builds the deferred change as a two-phase schedule: the
// current price through the end of the running period, the target price from
// then on. The subscription's existing schedule, if any, is updated in place
// so a retried or changed downgrade replaces phase two instead of stacking a
// third phase.
func (g *StripeGateway) ScheduleDowngrade(ctx context.Context, subscriptionRef, targetPriceID string) (usecases.GatewaySubscription, string, error) {
	current, err := g.fetch(ctx, subscriptionRef)
	if err != nil {
		return usecases.GatewaySubscription{}, "", err
	}
	item, err := singleItem(current)
	if err != nil {
		return usecases.GatewaySubscription{}, "", err
	}

	scheduleID, err := g.ensureSchedule(ctx, current)
	if err != nil {
		return usecases.GatewaySubscription{}, "", err
	}

	updateParams := &stripe.SubscriptionScheduleParams{
		EndBehavior: stripe.String(string(stripe.SubscriptionScheduleEndBehaviorRelease)),
		Phases: []*stripe.SubscriptionSchedulePhaseParams{
			{
				StartDate: stripe.Int64(item.CurrentPeriodStart),
				EndDate:   stripe.Int64(item.CurrentPeriodEnd),
				Items: []*stripe.SubscriptionSchedulePhaseItemParams{
					{
						Price:    stripe.String(item.Price.ID),
						Quantity: stripe.Int64(1),
					},
				},
			},
			{
				StartDate: stripe.Int64(item.CurrentPeriodEnd),
				Items: []*stripe.SubscriptionSchedulePhaseItemParams{
					{
						Price:    stripe.String(targetPriceID),
						Quantity: stripe.Int64(1),
					},
				},
			},
		},
	}
	updateParams.Context = ctx

	if _, err := stripeschedule.Update(scheduleID, updateParams); err != nil {
		return usecases.GatewaySubscription{}, "", g.processorError("failed to update subscription schedule", err)
	}

	g.logger.Infow("stripe downgrade scheduled",
		"subscription", subscriptionRef, "schedule", scheduleID, "target_price", targetPriceID)

	state, err := mapSubscription(current)
	if err != nil {
		return usecases.GatewaySubscription{}, "", err
	}
	return state, scheduleID, nil
}

func (g *StripeGateway) Cancel(ctx context.Context, subscriptionRef string, immediate bool) (usecases.GatewaySubscription, error) {
	if immediate {
		params := &stripe.SubscriptionCancelParams{}
		params.Context = ctx

		cancelled, err := stripesub.Cancel(subscriptionRef, params)
		if err != nil {
			return usecases.GatewaySubscription{}, g.processorError("failed to cancel subscription", err)
		}
		g.logger.Infow("stripe subscription cancelled", "subscription", subscriptionRef)
		return mapSubscription(cancelled)
	}

	params := &stripe.SubscriptionParams{CancelAtPeriodEnd: stripe.Bool(true)}
	params.Context = ctx

	updated, err := stripesub.Update(subscriptionRef, params)
	if err != nil {
		return usecases.GatewaySubscription{}, g.processorError("failed to flag subscription for cancellation", err)
	}
	g.logger.Infow("stripe subscription flagged for period-end cancellation", "subscription", subscriptionRef)
	return mapSubscription(updated)
}

func (g *StripeGateway) Reactivate(ctx context.Context, subscriptionRef string) (usecases.GatewaySubscription, error) {
	params := &stripe.SubscriptionParams{CancelAtPeriodEnd: stripe.Bool(false)}
	params.Context = ctx

	updated, err := stripesub.Update(subscriptionRef, params)
	if err != nil {
		return usecases.GatewaySubscription{}, g.processorError("failed to reactivate subscription", err)
	}
	g.logger.Infow("stripe subscription reactivated", "subscription", subscriptionRef)
	return mapSubscription(updated)
}

func (g *StripeGateway) fetch(ctx context.Context, subscriptionRef string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	params.AddExpand("schedule")

	sub, err := stripesub.Get(subscriptionRef, params)
	if err != nil {
		return nil, g.processorError("failed to fetch subscription", err)
	}
	return sub, nil
}

// ensureSchedule returns the subscription's schedule ID, creating one from
// the subscription when none exists yet. The read-before-write keeps
// repeated downgrades idempotent.
func (g *StripeGateway) ensureSchedule(ctx context.Context, sub *stripe.Subscription) (string, error) {
	if sub.Schedule != nil && sub.Schedule.ID != "" {
		return sub.Schedule.ID, nil
	}

	params := &stripe.SubscriptionScheduleParams{
		FromSubscription: stripe.String(sub.ID),
	}
	params.Context = ctx

	schedule, err := stripeschedule.New(params)
	if err != nil {
		return "", g.processorError("failed to create subscription schedule", err)
	}
	return schedule.ID, nil
}

// processorError surfaces the processor's own message so callers can relay
// it; no retry, no local fallback.
func (g *StripeGateway) processorError(message string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		g.logger.Errorw("stripe call failed", "error", stripeErr.Msg, "code", stripeErr.Code)
		return apperrors.NewProcessorError(message, stripeErr.Msg)
	}
	g.logger.Errorw("stripe call failed", "error", err)
	return apperrors.NewProcessorError(message, err.Error())
}

func singleItem(sub *stripe.Subscription) (*stripe.SubscriptionItem, error) {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return nil, fmt.Errorf("subscription %s has no items", sub.ID)
	}
	return sub.Items.Data[0], nil
}

// mapSubscription converts the processor's representation to the gateway
// contract. Billing period boundaries live on the subscription item.
func mapSubscription(sub *stripe.Subscription) (usecases.GatewaySubscription, error) {
	item, err := singleItem(sub)
	if err != nil {
		return usecases.GatewaySubscription{}, err
	}

	priceID := ""
	if item.Price != nil {
		priceID = item.Price.ID
	}

	return usecases.GatewaySubscription{
		ID:                 sub.ID,
		Status:             mapStatus(sub.Status),
		PriceID:            priceID,
		CurrentPeriodStart: time.Unix(item.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(item.CurrentPeriodEnd, 0).UTC(),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}, nil
}

// mapStatus folds Stripe's status vocabulary into the engine's. Unknown
// statuses fail closed as cancelled.
func mapStatus(status stripe.SubscriptionStatus) vo.SubscriptionStatus {
	switch status {
	case stripe.SubscriptionStatusTrialing:
		return vo.StatusTrial
	case stripe.SubscriptionStatusActive:
		return vo.StatusActive
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		return vo.StatusPastDue
	default:
		return vo.StatusCancelled
	}
}
