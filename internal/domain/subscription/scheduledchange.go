package subscription

import (
	"time"

	"github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
)

// ScheduledPlanChange is a pending downgrade, applied by the payment
// processor at the end of the current billing period. A subscription holds
// at most one; scheduling another replaces it.
type ScheduledPlanChange struct {
	TargetPlan     valueobjects.PlanTier
	TargetInterval valueobjects.BillingInterval
	EffectiveAt    time.Time
	ScheduleRef    string
}

// TargetSelection returns the plan selection the change switches to.
func (s ScheduledPlanChange) TargetSelection() valueobjects.PlanSelection {
	return valueobjects.NewPlanSelection(s.TargetPlan, s.TargetInterval)
}
