package mappers

import (
	"fmt"

	"github.com/fakturio-inc/fakturio/internal/domain/subscription"
	vo "github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	plan := vo.PlanTier(model.Plan)
	if !plan.IsValid() {
		return nil, fmt.Errorf("invalid plan tier: %s", model.Plan)
	}
	interval := vo.BillingInterval(model.BillingInterval)
	if !interval.IsValid() {
		return nil, fmt.Errorf("invalid billing interval: %s", model.BillingInterval)
	}
	status := vo.SubscriptionStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	var scheduledChange *subscription.ScheduledPlanChange
	if model.ScheduledPlan != nil && model.ScheduledInterval != nil && model.ScheduledEffectiveAt != nil {
		targetPlan := vo.PlanTier(*model.ScheduledPlan)
		targetInterval := vo.BillingInterval(*model.ScheduledInterval)
		if !targetPlan.IsValid() || !targetInterval.IsValid() {
			return nil, fmt.Errorf("invalid scheduled plan change: %s/%s", *model.ScheduledPlan, *model.ScheduledInterval)
		}
		change := subscription.ScheduledPlanChange{
			TargetPlan:     targetPlan,
			TargetInterval: targetInterval,
			EffectiveAt:    *model.ScheduledEffectiveAt,
		}
		if model.ScheduleRef != nil {
			change.ScheduleRef = *model.ScheduleRef
		}
		scheduledChange = &change
	}

	return subscription.ReconstructSubscription(
		model.ID,
		model.AccountID,
		plan,
		interval,
		status,
		model.StripeCustomerID,
		model.StripeSubscriptionID,
		model.CurrentPeriodStart,
		model.CurrentPeriodEnd,
		model.CancelAtPeriodEnd,
		scheduledChange,
		model.SyncedAt,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	), nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	model := &models.SubscriptionModel{
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
		Version:              entity.Version(),
		CreatedAt:            entity.CreatedAt(),
		UpdatedAt:            entity.UpdatedAt(),
	}

	if change := entity.ScheduledChange(); change != nil {
		plan := change.TargetPlan.String()
		interval := change.TargetInterval.String()
		effectiveAt := change.EffectiveAt
		model.ScheduledPlan = &plan
		model.ScheduledInterval = &interval
		model.ScheduledEffectiveAt = &effectiveAt
		if change.ScheduleRef != "" {
			ref := change.ScheduleRef
			model.ScheduleRef = &ref
		}
	}

	return model, nil
}
