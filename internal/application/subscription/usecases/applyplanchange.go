package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/fakturio-inc/fakturio/internal/domain/subscription"
	"github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/shared/biztime"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

// PlanChangeAction selects the orchestrator operation.
type PlanChangeAction string

const (
	ActionUpdatePlan   PlanChangeAction = "update_plan"
	ActionCancel       PlanChangeAction = "cancel"
	ActionReactivate   PlanChangeAction = "reactivate"
	ActionUpdateStatus PlanChangeAction = "update_status"
)

type ApplyPlanChangeCommand struct {
	AccountID         string
	Action            PlanChangeAction
	TargetPlan        valueobjects.PlanTier
	TargetInterval    valueobjects.BillingInterval
	CancelImmediately bool
}

// PlanChangeResult echoes the post-operation subscription state so callers
// can refresh their local view without a second round trip.
type PlanChangeResult struct {
	ID                string
	Status            valueobjects.SubscriptionStatus
	Plan              valueobjects.PlanTier
	Interval          valueobjects.BillingInterval
	CancelAtPeriodEnd bool
	CurrentPeriodEnd  *time.Time
	ScheduledChange   *subscription.ScheduledPlanChange
}

// ApplyPlanChangeUseCase orchestrates plan changes against the payment
// processor. The processor call is the unit of work: on processor error no
// local state is mutated and the error is surfaced to the caller.
type ApplyPlanChangeUseCase struct {
	subscriptionRepo subscription.Repository
	gateway          BillingGateway
	prices           PriceCatalog
	logger           logger.Interface
}

func NewApplyPlanChangeUseCase(
	subscriptionRepo subscription.Repository,
	gateway BillingGateway,
	prices PriceCatalog,
	logger logger.Interface,
) *ApplyPlanChangeUseCase {
	return &ApplyPlanChangeUseCase{
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		prices:           prices,
		logger:           logger,
	}
}

func (uc *ApplyPlanChangeUseCase) Execute(ctx context.Context, cmd ApplyPlanChangeCommand) (PlanChangeResult, error) {
	sub, err := uc.subscriptionRepo.GetByAccountID(ctx, cmd.AccountID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return PlanChangeResult{}, apperrors.NewNotFoundError("subscription not found")
		}
		uc.logger.Errorw("failed to get subscription", "error", err, "account_id", cmd.AccountID)
		return PlanChangeResult{}, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub.StripeSubscriptionID() == "" {
		return PlanChangeResult{}, apperrors.NewConflictError("subscription has no billing reference")
	}

	switch cmd.Action {
	case ActionUpdatePlan:
		return uc.updatePlan(ctx, sub, cmd)
	case ActionCancel:
		return uc.cancel(ctx, sub, cmd.CancelImmediately)
	case ActionReactivate:
		return uc.reactivate(ctx, sub)
	case ActionUpdateStatus:
		return uc.updateStatus(ctx, sub)
	default:
		return PlanChangeResult{}, apperrors.NewValidationError("unknown action", string(cmd.Action))
	}
}

func (uc *ApplyPlanChangeUseCase) updatePlan(ctx context.Context, sub *subscription.Subscription, cmd ApplyPlanChangeCommand) (PlanChangeResult, error) {
	target := valueobjects.NewPlanSelection(cmd.TargetPlan, cmd.TargetInterval)
	if !target.IsValid() {
		return PlanChangeResult{}, apperrors.NewValidationError("unknown plan or interval", target.String())
	}

	// Local validation runs before any processor call.
	targetPrice, ok := uc.prices.PriceFor(target)
	if !ok {
		return PlanChangeResult{}, apperrors.NewValidationError("plan not in price table", target.String())
	}
	current := sub.PlanSelection()
	currentPrice, ok := uc.prices.PriceFor(current)
	if !ok {
		uc.logger.Errorw("current plan missing from price table", "plan", current.String(), "subscription_id", sub.ID())
		return PlanChangeResult{}, apperrors.NewInternalError("current plan not in price table", current.String())
	}

	switch subscription.ClassifyPlanChange(current, target, currentPrice.Amount, targetPrice.Amount) {
	case subscription.ChangeNoOp:
		// Repeating the current plan is a no-op success.
		return resultFrom(sub), nil
	case subscription.ChangeUpgrade:
		return uc.upgrade(ctx, sub, target, targetPrice)
	default:
		return uc.downgrade(ctx, sub, target, targetPrice)
	}
}

func (uc *ApplyPlanChangeUseCase) upgrade(ctx context.Context, sub *subscription.Subscription, target valueobjects.PlanSelection, price BillingPrice) (PlanChangeResult, error) {
	state, err := uc.gateway.SwapPrice(ctx, sub.StripeSubscriptionID(), price.PriceID)
	if err != nil {
		uc.logger.Errorw("processor price swap failed", "error", err, "subscription_id", sub.ID(), "target", target.String())
		return PlanChangeResult{}, err
	}

	if err := sub.ChangePlan(target.Tier, target.Interval); err != nil {
		return PlanChangeResult{}, err
	}
	if err := uc.syncAndSave(ctx, sub, state); err != nil {
		return PlanChangeResult{}, err
	}

	uc.logger.Infow("plan upgraded", "subscription_id", sub.ID(), "plan", target.String())
	return resultFrom(sub), nil
}

func (uc *ApplyPlanChangeUseCase) downgrade(ctx context.Context, sub *subscription.Subscription, target valueobjects.PlanSelection, price BillingPrice) (PlanChangeResult, error) {
	state, scheduleRef, err := uc.gateway.ScheduleDowngrade(ctx, sub.StripeSubscriptionID(), price.PriceID)
	if err != nil {
		uc.logger.Errorw("processor downgrade scheduling failed", "error", err, "subscription_id", sub.ID(), "target", target.String())
		return PlanChangeResult{}, err
	}

	change := subscription.ScheduledPlanChange{
		TargetPlan:     target.Tier,
		TargetInterval: target.Interval,
		EffectiveAt:    state.CurrentPeriodEnd,
		ScheduleRef:    scheduleRef,
	}
	if err := sub.SchedulePlanChange(change); err != nil {
		return PlanChangeResult{}, err
	}
	if err := uc.syncAndSave(ctx, sub, state); err != nil {
		return PlanChangeResult{}, err
	}

	uc.logger.Infow("plan downgrade scheduled",
		"subscription_id", sub.ID(), "plan", target.String(), "effective_at", change.EffectiveAt)
	return resultFrom(sub), nil
}

func (uc *ApplyPlanChangeUseCase) cancel(ctx context.Context, sub *subscription.Subscription, immediate bool) (PlanChangeResult, error) {
	if sub.Status().IsTerminal() {
		return PlanChangeResult{}, apperrors.NewConflictError("subscription is already cancelled")
	}

	state, err := uc.gateway.Cancel(ctx, sub.StripeSubscriptionID(), immediate)
	if err != nil {
		uc.logger.Errorw("processor cancellation failed", "error", err, "subscription_id", sub.ID(), "immediate", immediate)
		return PlanChangeResult{}, err
	}

	if err := sub.Cancel(immediate); err != nil {
		return PlanChangeResult{}, err
	}
	if err := uc.syncAndSave(ctx, sub, state); err != nil {
		return PlanChangeResult{}, err
	}

	uc.logger.Infow("subscription cancelled", "subscription_id", sub.ID(), "immediate", immediate)
	return resultFrom(sub), nil
}

func (uc *ApplyPlanChangeUseCase) reactivate(ctx context.Context, sub *subscription.Subscription) (PlanChangeResult, error) {
	// Validated locally before touching the processor.
	if sub.Status().IsTerminal() {
		return PlanChangeResult{}, apperrors.NewConflictError("subscription is already cancelled")
	}
	if !sub.CancelAtPeriodEnd() {
		return PlanChangeResult{}, apperrors.NewConflictError("subscription is not flagged for cancellation")
	}

	state, err := uc.gateway.Reactivate(ctx, sub.StripeSubscriptionID())
	if err != nil {
		uc.logger.Errorw("processor reactivation failed", "error", err, "subscription_id", sub.ID())
		return PlanChangeResult{}, err
	}

	if err := sub.Reactivate(); err != nil {
		return PlanChangeResult{}, err
	}
	if err := uc.syncAndSave(ctx, sub, state); err != nil {
		return PlanChangeResult{}, err
	}

	uc.logger.Infow("subscription reactivated", "subscription_id", sub.ID())
	return resultFrom(sub), nil
}

// updateStatus issues no processor mutation; it refreshes the local
// projection from current processor state.
func (uc *ApplyPlanChangeUseCase) updateStatus(ctx context.Context, sub *subscription.Subscription) (PlanChangeResult, error) {
	state, err := uc.gateway.GetSubscription(ctx, sub.StripeSubscriptionID())
	if err != nil {
		uc.logger.Errorw("processor status fetch failed", "error", err, "subscription_id", sub.ID())
		return PlanChangeResult{}, err
	}

	if !sub.Status().IsTerminal() {
		if selection, ok := uc.prices.SelectionFor(state.PriceID); ok && selection != sub.PlanSelection() {
			if err := sub.ChangePlan(selection.Tier, selection.Interval); err != nil {
				return PlanChangeResult{}, err
			}
		}
	}
	if err := uc.syncAndSave(ctx, sub, state); err != nil {
		return PlanChangeResult{}, err
	}

	return resultFrom(sub), nil
}

func (uc *ApplyPlanChangeUseCase) syncAndSave(ctx context.Context, sub *subscription.Subscription, state GatewaySubscription) error {
	start := state.CurrentPeriodStart
	end := state.CurrentPeriodEnd
	if err := sub.SyncFromProcessor(state.Status, &start, &end, state.CancelAtPeriodEnd, biztime.NowUTC()); err != nil {
		return err
	}
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist subscription", "error", err, "subscription_id", sub.ID())
		return fmt.Errorf("failed to persist subscription: %w", err)
	}
	return nil
}

func resultFrom(sub *subscription.Subscription) PlanChangeResult {
	return PlanChangeResult{
		ID:                sub.ID(),
		Status:            sub.Status(),
		Plan:              sub.Plan(),
		Interval:          sub.Interval(),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd(),
		CurrentPeriodEnd:  sub.CurrentPeriodEnd(),
		ScheduledChange:   sub.ScheduledChange(),
	}
}
