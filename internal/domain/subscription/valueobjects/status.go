package valueobjects

// SubscriptionStatus is the lifecycle state of a subscription. The payment
// processor owns transitions triggered by billing events; the engine only
// issues the transitions below.
type SubscriptionStatus string

const (
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusCancelled SubscriptionStatus = "cancelled"
)

// validTransitions encodes trial → active → {past_due ↔ active} → cancelled,
// with cancelled as the terminal state.
var validTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	StatusTrial:     {StatusActive, StatusPastDue, StatusCancelled},
	StatusActive:    {StatusPastDue, StatusCancelled},
	StatusPastDue:   {StatusActive, StatusCancelled},
	StatusCancelled: {},
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// IsActiveForAccess reports whether the status counts as active for feature
// gating. Exactly trial and active qualify; past_due and cancelled do not.
func (s SubscriptionStatus) IsActiveForAccess() bool {
	return s == StatusTrial || s == StatusActive
}

// IsTerminal reports whether no further transitions are possible.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusCancelled
}

// CanTransitionTo reports whether the transition to target is allowed.
func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
