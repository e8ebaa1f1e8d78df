package valueobjects

// BillingInterval is the recurring billing period of a plan.
type BillingInterval string

const (
	IntervalMonthly BillingInterval = "monthly"
	IntervalYearly  BillingInterval = "yearly"
)

func (i BillingInterval) String() string {
	return string(i)
}

func (i BillingInterval) IsValid() bool {
	return i == IntervalMonthly || i == IntervalYearly
}
