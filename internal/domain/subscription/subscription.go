// Package subscription contains the subscription aggregate, its lifecycle
// state machine, and the pure plan-change decision function. The payment
// processor is the system of record for billing; locally persisted fields
// that it owns form a projection refreshed by SyncFromProcessor.
package subscription

import (
	"errors"
	"time"

	"github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/shared/biztime"
)

var (
	ErrInvalidPlan             = errors.New("invalid plan selection")
	ErrInvalidStatus           = errors.New("invalid subscription status")
	ErrInvalidStatusTransition = errors.New("invalid subscription status transition")
	ErrSubscriptionTerminal    = errors.New("subscription is cancelled")
	ErrNotFlaggedForCancel     = errors.New("subscription is not flagged for cancellation")
)

// Subscription is the aggregate root for an account's billing state. Exactly
// one subscription exists per account.
type Subscription struct {
	id                 string
	accountID          string
	plan               valueobjects.PlanTier
	interval           valueobjects.BillingInterval
	status             valueobjects.SubscriptionStatus
	stripeCustomerID   string
	stripeSubID        string
	currentPeriodStart *time.Time
	currentPeriodEnd   *time.Time
	cancelAtPeriodEnd  bool
	scheduledChange    *ScheduledPlanChange
	syncedAt           *time.Time
	createdAt          time.Time
	updatedAt          time.Time
	version            int64
}

// NewTrialSubscription creates the subscription opened at account signup.
func NewTrialSubscription(id, accountID string, plan valueobjects.PlanTier, interval valueobjects.BillingInterval) (*Subscription, error) {
	if !plan.IsValid() || !interval.IsValid() {
		return nil, ErrInvalidPlan
	}

	now := biztime.NowUTC()
	return &Subscription{
		id:        id,
		accountID: accountID,
		plan:      plan,
		interval:  interval,
		status:    valueobjects.StatusTrial,
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	id, accountID string,
	plan valueobjects.PlanTier,
	interval valueobjects.BillingInterval,
	status valueobjects.SubscriptionStatus,
	stripeCustomerID, stripeSubID string,
	currentPeriodStart, currentPeriodEnd *time.Time,
	cancelAtPeriodEnd bool,
	scheduledChange *ScheduledPlanChange,
	syncedAt *time.Time,
	createdAt, updatedAt time.Time,
	version int64,
) *Subscription {
	return &Subscription{
		id:                 id,
		accountID:          accountID,
		plan:               plan,
		interval:           interval,
		status:             status,
		stripeCustomerID:   stripeCustomerID,
		stripeSubID:        stripeSubID,
		currentPeriodStart: currentPeriodStart,
		currentPeriodEnd:   currentPeriodEnd,
		cancelAtPeriodEnd:  cancelAtPeriodEnd,
		scheduledChange:    scheduledChange,
		syncedAt:           syncedAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		version:            version,
	}
}

func (s *Subscription) ID() string                                 { return s.id }
func (s *Subscription) AccountID() string                          { return s.accountID }
func (s *Subscription) Plan() valueobjects.PlanTier                { return s.plan }
func (s *Subscription) Interval() valueobjects.BillingInterval     { return s.interval }
func (s *Subscription) Status() valueobjects.SubscriptionStatus    { return s.status }
func (s *Subscription) StripeCustomerID() string                   { return s.stripeCustomerID }
func (s *Subscription) StripeSubscriptionID() string               { return s.stripeSubID }
func (s *Subscription) CurrentPeriodStart() *time.Time             { return s.currentPeriodStart }
func (s *Subscription) CurrentPeriodEnd() *time.Time               { return s.currentPeriodEnd }
func (s *Subscription) CancelAtPeriodEnd() bool                    { return s.cancelAtPeriodEnd }
func (s *Subscription) ScheduledChange() *ScheduledPlanChange      { return s.scheduledChange }
func (s *Subscription) SyncedAt() *time.Time                       { return s.syncedAt }
func (s *Subscription) CreatedAt() time.Time                       { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time                       { return s.updatedAt }
func (s *Subscription) Version() int64                             { return s.version }

// PlanSelection returns the current tier and interval pair.
func (s *Subscription) PlanSelection() valueobjects.PlanSelection {
	return valueobjects.NewPlanSelection(s.plan, s.interval)
}

// IsActiveForAccess reports whether feature gating treats this subscription
// as active.
func (s *Subscription) IsActiveForAccess() bool {
	return s.status.IsActiveForAccess()
}

// AttachProcessorRefs records the processor-side customer and subscription
// identifiers once checkout completes.
func (s *Subscription) AttachProcessorRefs(customerID, subscriptionID string) {
	s.stripeCustomerID = customerID
	s.stripeSubID = subscriptionID
	s.touch()
}

// TransitionTo moves the subscription to a new status, enforcing the state
// machine.
func (s *Subscription) TransitionTo(target valueobjects.SubscriptionStatus) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}
	if !s.status.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	s.status = target
	s.touch()
	return nil
}

// ChangePlan applies a plan change locally, used for upgrades that take
// effect immediately. Any pending downgrade is superseded.
func (s *Subscription) ChangePlan(plan valueobjects.PlanTier, interval valueobjects.BillingInterval) error {
	if !plan.IsValid() || !interval.IsValid() {
		return ErrInvalidPlan
	}
	if s.status.IsTerminal() {
		return ErrSubscriptionTerminal
	}
	s.plan = plan
	s.interval = interval
	s.scheduledChange = nil
	s.touch()
	return nil
}

// SchedulePlanChange records a pending downgrade, replacing any existing one.
func (s *Subscription) SchedulePlanChange(change ScheduledPlanChange) error {
	if s.status.IsTerminal() {
		return ErrSubscriptionTerminal
	}
	s.scheduledChange = &change
	s.touch()
	return nil
}

// ClearScheduledChange drops the pending downgrade, if any.
func (s *Subscription) ClearScheduledChange() {
	if s.scheduledChange == nil {
		return
	}
	s.scheduledChange = nil
	s.touch()
}

// Cancel ends the subscription. With immediate set it transitions straight
// to cancelled; otherwise it flags the subscription to lapse at period end,
// leaving the status untouched.
func (s *Subscription) Cancel(immediate bool) error {
	if s.status.IsTerminal() {
		return ErrSubscriptionTerminal
	}
	if immediate {
		if err := s.TransitionTo(valueobjects.StatusCancelled); err != nil {
			return err
		}
		s.cancelAtPeriodEnd = false
		s.scheduledChange = nil
		return nil
	}
	s.cancelAtPeriodEnd = true
	s.touch()
	return nil
}

// Reactivate clears the end-of-period cancellation flag. It is invalid on a
// subscription that already reached the terminal cancelled state.
func (s *Subscription) Reactivate() error {
	if s.status.IsTerminal() {
		return ErrSubscriptionTerminal
	}
	if !s.cancelAtPeriodEnd {
		return ErrNotFlaggedForCancel
	}
	s.cancelAtPeriodEnd = false
	s.touch()
	return nil
}

// SyncFromProcessor refreshes the processor-owned projection fields. It
// bypasses the local transition table because the processor is the system of
// record for status; staleness stays observable through SyncedAt.
func (s *Subscription) SyncFromProcessor(
	status valueobjects.SubscriptionStatus,
	periodStart, periodEnd *time.Time,
	cancelAtPeriodEnd bool,
	syncedAt time.Time,
) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	s.status = status
	s.currentPeriodStart = periodStart
	s.currentPeriodEnd = periodEnd
	s.cancelAtPeriodEnd = cancelAtPeriodEnd
	s.syncedAt = &syncedAt
	s.touch()
	return nil
}

func (s *Subscription) touch() {
	s.updatedAt = biztime.NowUTC()
	s.version++
}
