package entitlement

import "github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"

// PlanFeatureMatrix maps (plan, feature) to an access level. It is built
// once at engine construction and never mutated; lookups are total, with
// unmapped pairs resolving to none.
type PlanFeatureMatrix struct {
	entries map[valueobjects.PlanTier]map[FeatureKey]AccessLevel
}

// NewPlanFeatureMatrix copies the given entries into an immutable matrix.
func NewPlanFeatureMatrix(entries map[valueobjects.PlanTier]map[FeatureKey]AccessLevel) PlanFeatureMatrix {
	copied := make(map[valueobjects.PlanTier]map[FeatureKey]AccessLevel, len(entries))
	for plan, features := range entries {
		row := make(map[FeatureKey]AccessLevel, len(features))
		for feature, level := range features {
			row[feature] = level
		}
		copied[plan] = row
	}
	return PlanFeatureMatrix{entries: copied}
}

// Resolve returns the access level a plan grants for a feature. Unknown
// plans and unmapped features resolve to none.
func (m PlanFeatureMatrix) Resolve(plan valueobjects.PlanTier, feature FeatureKey) AccessLevel {
	row, ok := m.entries[plan]
	if !ok {
		return AccessNone
	}
	level, ok := row[feature]
	if !ok {
		return AccessNone
	}
	return level
}

// ModuleFeatureMap maps modules to the feature that gates them. Modules
// without a mapping are not subscription-feature-gated.
type ModuleFeatureMap struct {
	entries map[ModuleKey]FeatureKey
}

// NewModuleFeatureMap copies the given entries into an immutable map.
func NewModuleFeatureMap(entries map[ModuleKey]FeatureKey) ModuleFeatureMap {
	copied := make(map[ModuleKey]FeatureKey, len(entries))
	for module, feature := range entries {
		copied[module] = feature
	}
	return ModuleFeatureMap{entries: copied}
}

// FeatureFor returns the feature gating a module, if any.
func (m ModuleFeatureMap) FeatureFor(module ModuleKey) (FeatureKey, bool) {
	feature, ok := m.entries[module]
	return feature, ok
}
