package valueobjects

// PlanSelection pairs a tier with a billing interval. It identifies one row
// of the price table.
type PlanSelection struct {
	Tier     PlanTier
	Interval BillingInterval
}

func NewPlanSelection(tier PlanTier, interval BillingInterval) PlanSelection {
	return PlanSelection{Tier: tier, Interval: interval}
}

func (p PlanSelection) IsValid() bool {
	return p.Tier.IsValid() && p.Interval.IsValid()
}

func (p PlanSelection) String() string {
	return p.Tier.String() + "/" + p.Interval.String()
}
