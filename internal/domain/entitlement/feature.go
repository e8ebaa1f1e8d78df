// Package entitlement contains the pure entitlement policy: the plan-feature
// matrix, the module-feature map, the quota table, and the access resolver.
// Everything here is immutable after construction and safe for concurrent
// reads without synchronization.
package entitlement

// FeatureKey names a plan-gated capability.
type FeatureKey string

const (
	FeatureLeads     FeatureKey = "leads"
	FeatureMultiUser FeatureKey = "multi_user"
	FeaturePeppol    FeatureKey = "peppol"
	FeatureReporting FeatureKey = "reporting"
)

func (f FeatureKey) String() string {
	return string(f)
}

func (f FeatureKey) IsValid() bool {
	switch f {
	case FeatureLeads, FeatureMultiUser, FeaturePeppol, FeatureReporting:
		return true
	}
	return false
}

// AccessLevel is the entitlement a plan grants for a feature.
type AccessLevel string

const (
	AccessFull    AccessLevel = "full"
	AccessLimited AccessLevel = "limited"
	AccessNone    AccessLevel = "none"
)

func (a AccessLevel) String() string {
	return string(a)
}

// Allows reports whether the level grants any access at all.
func (a AccessLevel) Allows() bool {
	return a == AccessFull || a == AccessLimited
}
