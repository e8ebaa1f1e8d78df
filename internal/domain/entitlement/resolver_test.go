package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
)

func starterSubject(status valueobjects.SubscriptionStatus) Subject {
	return Subject{SubscriptionStatus: status, Plan: valueobjects.PlanStarter}
}

func TestResolver_SuperadminBypassesStatus(t *testing.T) {
	r := NewResolver(DefaultPlanFeatureMatrix())

	subject := starterSubject(valueobjects.StatusCancelled)
	subject.Superadmin = true

	result := r.ResolveFeatureAccess(subject, FeatureLeads)
	assert.True(t, result.Allowed)
	assert.Equal(t, AccessFull, result.Level)
	assert.Empty(t, result.Reason)
}

func TestResolver_LifetimeAccessBypassesStatus(t *testing.T) {
	r := NewResolver(DefaultPlanFeatureMatrix())

	subject := starterSubject(valueobjects.StatusPastDue)
	subject.LifetimeAccess = true

	result := r.ResolveFeatureAccess(subject, FeatureMultiUser)
	assert.True(t, result.Allowed)
	assert.Equal(t, AccessFull, result.Level)
}

func TestResolver_InactiveStatuses(t *testing.T) {
	r := NewResolver(DefaultPlanFeatureMatrix())

	for _, status := range []valueobjects.SubscriptionStatus{valueobjects.StatusPastDue, valueobjects.StatusCancelled} {
		result := r.ResolveFeatureAccess(starterSubject(status), FeaturePeppol)
		assert.False(t, result.Allowed, "status %s", status)
		assert.Equal(t, AccessNone, result.Level)
		assert.Equal(t, ReasonSubscriptionInactive, result.Reason)
	}
}

func TestResolver_ActiveStatuses(t *testing.T) {
	r := NewResolver(DefaultPlanFeatureMatrix())

	for _, status := range []valueobjects.SubscriptionStatus{valueobjects.StatusTrial, valueobjects.StatusActive} {
		result := r.ResolveFeatureAccess(starterSubject(status), FeaturePeppol)
		assert.True(t, result.Allowed, "status %s", status)
		assert.Equal(t, AccessLimited, result.Level)
	}
}

func TestResolver_FeatureNotInPlan(t *testing.T) {
	r := NewResolver(DefaultPlanFeatureMatrix())

	result := r.ResolveFeatureAccess(starterSubject(valueobjects.StatusActive), FeatureLeads)
	assert.False(t, result.Allowed)
	assert.Equal(t, AccessNone, result.Level)
	assert.Equal(t, ReasonFeatureNotInPlan, result.Reason)
}

// The resolver is total: any (plan, feature) pair yields a result, with
// unmapped pairs resolving to none.
func TestResolver_TotalOverUnknownPairs(t *testing.T) {
	r := NewResolver(NewPlanFeatureMatrix(nil))

	subject := Subject{
		SubscriptionStatus: valueobjects.StatusActive,
		Plan:               valueobjects.PlanTier("enterprise"),
	}
	result := r.ResolveFeatureAccess(subject, FeatureKey("time_travel"))
	assert.False(t, result.Allowed)
	assert.Equal(t, AccessNone, result.Level)
	assert.Equal(t, ReasonFeatureNotInPlan, result.Reason)
}

func TestPlanFeatureMatrix_IsolatedFromSourceMap(t *testing.T) {
	source := map[valueobjects.PlanTier]map[FeatureKey]AccessLevel{
		valueobjects.PlanStarter: {FeatureLeads: AccessFull},
	}
	m := NewPlanFeatureMatrix(source)

	source[valueobjects.PlanStarter][FeatureLeads] = AccessNone
	assert.Equal(t, AccessFull, m.Resolve(valueobjects.PlanStarter, FeatureLeads))
}

func TestQuotaTable_Limit(t *testing.T) {
	table := DefaultQuotaTable()

	assert.Equal(t, int64(10), table.Limit(valueobjects.PlanStarter, QuotaInvoices))
	assert.Equal(t, UnlimitedQuota, table.Limit(valueobjects.PlanPro, QuotaInvoices))

	// Missing pairs fail closed with a zero limit.
	assert.Equal(t, int64(0), table.Limit(valueobjects.PlanTier("enterprise"), QuotaInvoices))
	assert.Equal(t, int64(0), table.Limit(valueobjects.PlanStarter, QuotaKey("exports")))
}

func TestModuleFeatureMap_FeatureFor(t *testing.T) {
	m := DefaultModuleFeatureMap()

	feature, ok := m.FeatureFor(ModulePeppolAccessPoint)
	assert.True(t, ok)
	assert.Equal(t, FeaturePeppol, feature)

	_, ok = m.FeatureFor(ModuleInvoices)
	assert.False(t, ok)
}
