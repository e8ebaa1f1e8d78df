package entitlement

import "github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"

// The shipped policy tables. These are code, not runtime configuration;
// changing an entitlement is a deploy.

// DefaultPlanFeatureMatrix returns the shipped plan-feature matrix.
func DefaultPlanFeatureMatrix() PlanFeatureMatrix {
	return NewPlanFeatureMatrix(map[valueobjects.PlanTier]map[FeatureKey]AccessLevel{
		valueobjects.PlanStarter: {
			FeatureLeads:     AccessNone,
			FeatureMultiUser: AccessNone,
			FeaturePeppol:    AccessLimited,
			FeatureReporting: AccessLimited,
		},
		valueobjects.PlanPro: {
			FeatureLeads:     AccessFull,
			FeatureMultiUser: AccessFull,
			FeaturePeppol:    AccessFull,
			FeatureReporting: AccessFull,
		},
	})
}

// DefaultModuleFeatureMap returns the shipped module-feature map. Modules
// absent here (clients, quotes, invoices, settings) are available on every
// plan and gated only by profile permissions.
func DefaultModuleFeatureMap() ModuleFeatureMap {
	return NewModuleFeatureMap(map[ModuleKey]FeatureKey{
		ModuleLeads:             FeatureLeads,
		ModuleReports:           FeatureReporting,
		ModulePeppolAccessPoint: FeaturePeppol,
	})
}

// DefaultQuotaTable returns the shipped per-cycle quota limits.
func DefaultQuotaTable() QuotaTable {
	return NewQuotaTable(map[valueobjects.PlanTier]map[QuotaKey]int64{
		valueobjects.PlanStarter: {
			QuotaQuotes:         10,
			QuotaInvoices:       10,
			QuotaClients:        25,
			QuotaPeppolInvoices: 5,
		},
		valueobjects.PlanPro: {
			QuotaQuotes:         UnlimitedQuota,
			QuotaInvoices:       UnlimitedQuota,
			QuotaClients:        UnlimitedQuota,
			QuotaPeppolInvoices: UnlimitedQuota,
		},
	})
}
