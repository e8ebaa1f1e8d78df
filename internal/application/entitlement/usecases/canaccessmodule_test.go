package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountvo "github.com/fakturio-inc/fakturio/internal/domain/account/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/domain/entitlement"
	profilevo "github.com/fakturio-inc/fakturio/internal/domain/profile/valueobjects"
	subvo "github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
)

func newModuleUseCase(accountRepo *fakeAccountRepo, profileRepo *fakeProfileRepo, subRepo *fakeSubscriptionRepo) *CanAccessModuleUseCase {
	return NewCanAccessModuleUseCase(
		accountRepo,
		profileRepo,
		subRepo,
		entitlement.DefaultPlanFeatureMatrix(),
		entitlement.DefaultModuleFeatureMap(),
		newNopLogger(),
	)
}

func viewQuery(module entitlement.ModuleKey) CanAccessModuleQuery {
	return CanAccessModuleQuery{
		AccountID:          "acc-1",
		Module:             module,
		RequiredPermission: profilevo.PermissionViewOnly,
	}
}

func TestCanAccessModule_SuperadminAllowsWithoutProfile(t *testing.T) {
	uc := newModuleUseCase(
		&fakeAccountRepo{account: testAccount(t, accountvo.RoleSuperadmin, false)},
		&fakeProfileRepo{},
		&fakeSubscriptionRepo{},
	)

	result, err := uc.Execute(context.Background(), viewQuery(entitlement.ModuleInvoices))
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestCanAccessModule_CancelledSubscriptionDeniesEverything(t *testing.T) {
	// Even a profile admin with full access is denied on a cancelled
	// subscription.
	uc := newModuleUseCase(
		&fakeAccountRepo{account: testAccount(t, accountvo.RoleNormal, false)},
		&fakeProfileRepo{profile: testProfile(t, profilevo.ProfileRoleAdmin)},
		&fakeSubscriptionRepo{sub: testSubscription(t, subvo.PlanPro, subvo.StatusCancelled)},
	)

	for _, module := range []entitlement.ModuleKey{entitlement.ModuleInvoices, entitlement.ModuleLeads, entitlement.ModuleSettings} {
		result, err := uc.Execute(context.Background(), viewQuery(module))
		require.NoError(t, err)
		assert.False(t, result.Allowed, "module %s", module)
		assert.Equal(t, entitlement.ReasonSubscriptionInactive, result.Reason)
		assert.True(t, result.UpgradeRequired)
	}
}

func TestCanAccessModule_MissingSubscriptionDenies(t *testing.T) {
	uc := newModuleUseCase(
		&fakeAccountRepo{account: testAccount(t, accountvo.RoleNormal, false)},
		&fakeProfileRepo{profile: testProfile(t, profilevo.ProfileRoleAdmin)},
		&fakeSubscriptionRepo{},
	)

	result, err := uc.Execute(context.Background(), viewQuery(entitlement.ModuleInvoices))
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, entitlement.ReasonSubscriptionInactive, result.Reason)
}

func TestCanAccessModule_LifetimeAccessSkipsSubscriptionGates(t *testing.T) {
	// Lifetime access skips status and plan gating but still needs an
	// active profile.
	accountRepo := &fakeAccountRepo{account: testAccount(t, accountvo.RoleNormal, true)}
	subRepo := &fakeSubscriptionRepo{}

	uc := newModuleUseCase(accountRepo, &fakeProfileRepo{}, subRepo)
	result, err := uc.Execute(context.Background(), viewQuery(entitlement.ModuleLeads))
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, entitlement.ReasonNoActiveProfile, result.Reason)

	uc = newModuleUseCase(accountRepo, &fakeProfileRepo{profile: testProfile(t, profilevo.ProfileRoleAdmin)}, subRepo)
	result, err = uc.Execute(context.Background(), viewQuery(entitlement.ModuleLeads))
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestCanAccessModule_FeatureNotInPlan(t *testing.T) {
	// Leads is feature-gated and starter maps it to none.
	uc := newModuleUseCase(
		&fakeAccountRepo{account: testAccount(t, accountvo.RoleNormal, false)},
		&fakeProfileRepo{profile: testProfile(t, profilevo.ProfileRoleAdmin)},
		&fakeSubscriptionRepo{sub: testSubscription(t, subvo.PlanStarter, subvo.StatusActive)},
	)

	result, err := uc.Execute(context.Background(), viewQuery(entitlement.ModuleLeads))
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, entitlement.ReasonFeatureNotInPlan, result.Reason)
	assert.True(t, result.UpgradeRequired)
	assert.Equal(t, subvo.PlanPro, result.RequiredPlan)
}

func TestCanAccessModule_UnmappedModuleSkipsPlanGate(t *testing.T) {
	uc := newModuleUseCase(
		&fakeAccountRepo{account: testAccount(t, accountvo.RoleNormal, false)},
		&fakeProfileRepo{profile: testProfile(t, profilevo.ProfileRoleAdmin)},
		&fakeSubscriptionRepo{sub: testSubscription(t, subvo.PlanStarter, subvo.StatusActive)},
	)

	result, err := uc.Execute(context.Background(), viewQuery(entitlement.ModuleInvoices))
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestCanAccessModule_PeppolFailsClosedWithoutBusinessSize(t *testing.T) {
	// Pro plan and admin profile both allow, yet the access point denies
	// until a business size is declared.
	acc := testAccount(t, accountvo.RoleNormal, false)
	uc := newModuleUseCase(
		&fakeAccountRepo{account: acc},
		&fakeProfileRepo{profile: testProfile(t, profilevo.ProfileRoleAdmin)},
		&fakeSubscriptionRepo{sub: testSubscription(t, subvo.PlanPro, subvo.StatusActive)},
	)

	result, err := uc.Execute(context.Background(), viewQuery(entitlement.ModulePeppolAccessPoint))
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, entitlement.ReasonBusinessSizeRequired, result.Reason)

	require.NoError(t, acc.DeclareBusinessSize(accountvo.BusinessSizeMedium))
	result, err = uc.Execute(context.Background(), viewQuery(entitlement.ModulePeppolAccessPoint))
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestCanAccessModule_ProfilePermissionMap(t *testing.T) {
	prof := testProfile(t, profilevo.ProfileRoleMember)
	require.NoError(t, prof.GrantPermission("invoices", profilevo.PermissionViewOnly))

	uc := newModuleUseCase(
		&fakeAccountRepo{account: testAccount(t, accountvo.RoleNormal, false)},
		&fakeProfileRepo{profile: prof},
		&fakeSubscriptionRepo{sub: testSubscription(t, subvo.PlanStarter, subvo.StatusActive)},
	)

	// Missing entry denies.
	result, err := uc.Execute(context.Background(), viewQuery(entitlement.ModuleQuotes))
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, entitlement.ReasonPermissionDenied, result.Reason)

	// View entry satisfies a view requirement.
	result, err = uc.Execute(context.Background(), viewQuery(entitlement.ModuleInvoices))
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	// View entry does not satisfy a full-access requirement.
	query := viewQuery(entitlement.ModuleInvoices)
	query.RequiredPermission = profilevo.PermissionFullAccess
	result, err = uc.Execute(context.Background(), query)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, entitlement.ReasonInsufficientPermission, result.Reason)
}

func TestCanAccessModule_InactiveProfileDenies(t *testing.T) {
	prof := testProfile(t, profilevo.ProfileRoleAdmin)
	prof.Deactivate()

	uc := newModuleUseCase(
		&fakeAccountRepo{account: testAccount(t, accountvo.RoleNormal, false)},
		&fakeProfileRepo{profile: prof},
		&fakeSubscriptionRepo{sub: testSubscription(t, subvo.PlanStarter, subvo.StatusActive)},
	)

	result, err := uc.Execute(context.Background(), viewQuery(entitlement.ModuleInvoices))
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, entitlement.ReasonNoActiveProfile, result.Reason)
}

func TestCanAccessModule_UnknownModuleOrPermission(t *testing.T) {
	uc := newModuleUseCase(&fakeAccountRepo{}, &fakeProfileRepo{}, &fakeSubscriptionRepo{})

	_, err := uc.Execute(context.Background(), viewQuery(entitlement.ModuleKey("billing")))
	assert.True(t, apperrors.IsValidationError(err))

	query := viewQuery(entitlement.ModuleInvoices)
	query.RequiredPermission = profilevo.PermissionLevel("write")
	_, err = uc.Execute(context.Background(), query)
	assert.True(t, apperrors.IsValidationError(err))
}
