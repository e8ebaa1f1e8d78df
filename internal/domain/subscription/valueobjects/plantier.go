package valueobjects

// PlanTier is a subscription tier. Tiers form an ordered hierarchy used to
// classify plan changes and to name the next tier up on upgrade-required
// denials.
type PlanTier string

const (
	PlanStarter PlanTier = "starter"
	PlanPro     PlanTier = "pro"
)

func (p PlanTier) String() string {
	return string(p)
}

func (p PlanTier) IsValid() bool {
	return p == PlanStarter || p == PlanPro
}

// Rank orders tiers; higher means more entitled. Unknown tiers rank below
// starter.
func (p PlanTier) Rank() int {
	switch p {
	case PlanStarter:
		return 1
	case PlanPro:
		return 2
	default:
		return 0
	}
}

// NextTierUp returns the tier above this one, or the same tier when already
// at the top.
func (p PlanTier) NextTierUp() PlanTier {
	if p == PlanStarter {
		return PlanPro
	}
	return p
}
