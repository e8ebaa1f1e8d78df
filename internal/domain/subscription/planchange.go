package subscription

import "github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"

// ChangeKind classifies a requested plan change. Upgrades apply immediately
// with proration; downgrades are deferred to the end of the current period
// via a schedule.
type ChangeKind string

const (
	ChangeUpgrade   ChangeKind = "upgrade"
	ChangeDowngrade ChangeKind = "downgrade"
	ChangeNoOp      ChangeKind = "noop"
)

// ClassifyPlanChange decides how a plan change is applied. Tier rank wins
// first; within the same tier the recurring price per period decides, so
// monthly to yearly is an upgrade and yearly to monthly is a downgrade.
// currentAmount and targetAmount are the recurring prices of the two
// selections in the smallest currency unit.
func ClassifyPlanChange(current, target valueobjects.PlanSelection, currentAmount, targetAmount int64) ChangeKind {
	if current == target {
		return ChangeNoOp
	}

	currentRank := current.Tier.Rank()
	targetRank := target.Tier.Rank()
	switch {
	case targetRank > currentRank:
		return ChangeUpgrade
	case targetRank < currentRank:
		return ChangeDowngrade
	}

	// Same tier, different interval or price.
	switch {
	case targetAmount > currentAmount:
		return ChangeUpgrade
	case targetAmount < currentAmount:
		return ChangeDowngrade
	}

	// Equal recurring prices only happen with hand-edited price tables.
	// Fall back to the interval rule: leaving yearly billing is a downgrade.
	if current.Interval == valueobjects.IntervalYearly && target.Interval == valueobjects.IntervalMonthly {
		return ChangeDowngrade
	}
	return ChangeUpgrade
}
