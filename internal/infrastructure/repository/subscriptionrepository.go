package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fakturio-inc/fakturio/internal/domain/subscription"
	"github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/persistence/mappers"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/persistence/models"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id string) (*subscription.Subscription, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *SubscriptionRepositoryImpl) GetByAccountID(ctx context.Context, accountID string) (*subscription.Subscription, error) {
	return r.getOne(ctx, "account_id = ?", accountID)
}

func (r *SubscriptionRepositoryImpl) GetByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*subscription.Subscription, error) {
	return r.getOne(ctx, "stripe_subscription_id = ?", stripeSubID)
}

func (r *SubscriptionRepositoryImpl) GetMostRecentBillable(ctx context.Context, accountID string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND status IN ?", accountID, []string{
			valueobjects.StatusTrial.String(),
			valueobjects.StatusActive.String(),
			valueobjects.StatusPastDue.String(),
		}).
		Order("updated_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("no billable subscription")
		}
		r.logger.Errorw("failed to get billable subscription", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to get billable subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) getOne(ctx context.Context, query string, arg interface{}) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("subscription not found")
		}
		r.logger.Errorw("failed to get subscription", "query", query, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, entity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "id", model.ID, "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "account_id", model.AccountID)
	return nil
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, entity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("id = ? AND version < ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"plan":                   model.Plan,
			"billing_interval":       model.BillingInterval,
			"status":                 model.Status,
			"stripe_customer_id":     model.StripeCustomerID,
			"stripe_subscription_id": model.StripeSubscriptionID,
			"current_period_start":   model.CurrentPeriodStart,
			"current_period_end":     model.CurrentPeriodEnd,
			"cancel_at_period_end":   model.CancelAtPeriodEnd,
			"scheduled_plan":         model.ScheduledPlan,
			"scheduled_interval":     model.ScheduledInterval,
			"scheduled_effective_at": model.ScheduledEffectiveAt,
			"schedule_ref":           model.ScheduleRef,
			"synced_at":              model.SyncedAt,
			"version":                model.Version,
			"updated_at":             model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("subscription was modified concurrently")
	}

	r.logger.Infow("subscription updated", "id", model.ID, "status", model.Status)
	return nil
}
