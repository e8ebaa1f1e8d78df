package entitlement

// DenyReason is a machine-readable code explaining a denied access check.
// The engine never renders user-facing text; callers translate these.
type DenyReason string

const (
	ReasonSubscriptionInactive   DenyReason = "subscription_inactive"
	ReasonFeatureNotInPlan       DenyReason = "feature_not_in_plan"
	ReasonNoActiveProfile        DenyReason = "no_active_profile"
	ReasonPermissionDenied       DenyReason = "permission_denied"
	ReasonInsufficientPermission DenyReason = "insufficient_permission"
	ReasonBusinessSizeRequired   DenyReason = "business_size_required"
)

func (r DenyReason) String() string {
	return string(r)
}
