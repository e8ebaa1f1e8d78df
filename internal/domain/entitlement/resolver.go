package entitlement

import "github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"

// Subject is the slice of account and subscription state the resolver needs.
// Building it from the aggregates keeps the resolver pure and trivially
// testable.
type Subject struct {
	Superadmin         bool
	LifetimeAccess     bool
	SubscriptionStatus valueobjects.SubscriptionStatus
	Plan               valueobjects.PlanTier
}

// AccessResult is the outcome of a feature access check.
type AccessResult struct {
	Allowed bool
	Level   AccessLevel
	Reason  DenyReason
}

// Resolver decides per-feature access from subscription state and the
// plan-feature matrix. It is pure; no side effects, safe for concurrent use.
type Resolver struct {
	matrix PlanFeatureMatrix
}

// NewResolver creates a resolver over the given matrix.
func NewResolver(matrix PlanFeatureMatrix) *Resolver {
	return &Resolver{matrix: matrix}
}

// ResolveFeatureAccess decides whether the subject may use a feature.
// Superadmin and lifetime access bypass the subscription status check
// entirely. Only trial and active statuses pass it; the matrix then decides,
// with any level other than none counting as allowed.
func (r *Resolver) ResolveFeatureAccess(subject Subject, feature FeatureKey) AccessResult {
	if subject.Superadmin || subject.LifetimeAccess {
		return AccessResult{Allowed: true, Level: AccessFull}
	}

	if !subject.SubscriptionStatus.IsActiveForAccess() {
		return AccessResult{Allowed: false, Level: AccessNone, Reason: ReasonSubscriptionInactive}
	}

	level := r.matrix.Resolve(subject.Plan, feature)
	if !level.Allows() {
		return AccessResult{Allowed: false, Level: AccessNone, Reason: ReasonFeatureNotInPlan}
	}
	return AccessResult{Allowed: true, Level: level}
}
