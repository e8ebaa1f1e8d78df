package cache

import (
	"context"

	"github.com/fakturio-inc/fakturio/internal/domain/subscription"
	vo "github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

// CachedSubscriptionRepository decorates the subscription repository with
// the redis projection cache on the per-account read path. Cache failures
// degrade to the database; they never fail a request. Writes invalidate
// before delegating so a racing read repopulates from fresh data.
type CachedSubscriptionRepository struct {
	inner  subscription.Repository
	cache  SubscriptionProjectionCache
	logger logger.Interface
}

func NewCachedSubscriptionRepository(
	inner subscription.Repository,
	cache SubscriptionProjectionCache,
	logger logger.Interface,
) subscription.Repository {
	return &CachedSubscriptionRepository{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}
}

func (r *CachedSubscriptionRepository) GetByAccountID(ctx context.Context, accountID string) (*subscription.Subscription, error) {
	if cached, err := r.cache.Get(ctx, accountID); err == nil && cached != nil {
		if cached.NotFound {
			return nil, apperrors.NewNotFoundError("subscription not found")
		}
		if entity := fromProjection(cached); entity != nil {
			return entity, nil
		}
	} else if err != nil {
		r.logger.Warnw("subscription projection cache read failed", "account_id", accountID, "error", err)
	}

	entity, err := r.inner.GetByAccountID(ctx, accountID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			if cacheErr := r.cache.SetNotFound(ctx, accountID); cacheErr != nil {
				r.logger.Warnw("failed to cache not-found marker", "account_id", accountID, "error", cacheErr)
			}
		}
		return nil, err
	}

	if cacheErr := r.cache.Set(ctx, accountID, toProjection(entity)); cacheErr != nil {
		r.logger.Warnw("failed to cache subscription projection", "account_id", accountID, "error", cacheErr)
	}
	return entity, nil
}

func (r *CachedSubscriptionRepository) GetByID(ctx context.Context, id string) (*subscription.Subscription, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *CachedSubscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*subscription.Subscription, error) {
	return r.inner.GetByStripeSubscriptionID(ctx, stripeSubID)
}

func (r *CachedSubscriptionRepository) GetMostRecentBillable(ctx context.Context, accountID string) (*subscription.Subscription, error) {
	return r.inner.GetMostRecentBillable(ctx, accountID)
}

func (r *CachedSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	if err := r.cache.Invalidate(ctx, sub.AccountID()); err != nil {
		r.logger.Warnw("failed to invalidate subscription projection", "account_id", sub.AccountID(), "error", err)
	}
	return r.inner.Create(ctx, sub)
}

func (r *CachedSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	if err := r.cache.Invalidate(ctx, sub.AccountID()); err != nil {
		r.logger.Warnw("failed to invalidate subscription projection", "account_id", sub.AccountID(), "error", err)
	}
	return r.inner.Update(ctx, sub)
}

func toProjection(entity *subscription.Subscription) *CachedSubscription {
	projection := &CachedSubscription{
		ID:                   entity.ID(),
		AccountID:            entity.AccountID(),
		Plan:                 entity.Plan().String(),
		BillingInterval:      entity.Interval().String(),
		Status:               entity.Status().String(),
		StripeCustomerID:     entity.StripeCustomerID(),
		StripeSubscriptionID: entity.StripeSubscriptionID(),
		CurrentPeriodStart:   entity.CurrentPeriodStart(),
		CurrentPeriodEnd:     entity.CurrentPeriodEnd(),
		CancelAtPeriodEnd:    entity.CancelAtPeriodEnd(),
		SyncedAt:             entity.SyncedAt(),
		CreatedAt:            entity.CreatedAt(),
		UpdatedAt:            entity.UpdatedAt(),
		Version:              entity.Version(),
	}
	if change := entity.ScheduledChange(); change != nil {
		plan := change.TargetPlan.String()
		interval := change.TargetInterval.String()
		effectiveAt := change.EffectiveAt
		projection.ScheduledPlan = &plan
		projection.ScheduledInterval = &interval
		projection.ScheduledEffectiveAt = &effectiveAt
		if change.ScheduleRef != "" {
			ref := change.ScheduleRef
			projection.ScheduleRef = &ref
		}
	}
	return projection
}

// fromProjection rebuilds the aggregate from the cached projection. Returns
// nil when the cached data no longer parses, forcing a database read.
func fromProjection(cached *CachedSubscription) *subscription.Subscription {
	plan := vo.PlanTier(cached.Plan)
	interval := vo.BillingInterval(cached.BillingInterval)
	status := vo.SubscriptionStatus(cached.Status)
	if !plan.IsValid() || !interval.IsValid() || !status.IsValid() {
		return nil
	}

	var scheduledChange *subscription.ScheduledPlanChange
	if cached.ScheduledPlan != nil && cached.ScheduledInterval != nil && cached.ScheduledEffectiveAt != nil {
		targetPlan := vo.PlanTier(*cached.ScheduledPlan)
		targetInterval := vo.BillingInterval(*cached.ScheduledInterval)
		if !targetPlan.IsValid() || !targetInterval.IsValid() {
			return nil
		}
		change := subscription.ScheduledPlanChange{
			TargetPlan:     targetPlan,
			TargetInterval: targetInterval,
			EffectiveAt:    *cached.ScheduledEffectiveAt,
		}
		if cached.ScheduleRef != nil {
			change.ScheduleRef = *cached.ScheduleRef
		}
		scheduledChange = &change
	}

	return subscription.ReconstructSubscription(
		cached.ID,
		cached.AccountID,
		plan,
		interval,
		status,
		cached.StripeCustomerID,
		cached.StripeSubscriptionID,
		cached.CurrentPeriodStart,
		cached.CurrentPeriodEnd,
		cached.CancelAtPeriodEnd,
		scheduledChange,
		cached.SyncedAt,
		cached.CreatedAt,
		cached.UpdatedAt,
		cached.Version,
	)
}
