package usecases

import (
	"context"
	"fmt"

	"github.com/fakturio-inc/fakturio/internal/domain/account"
	"github.com/fakturio-inc/fakturio/internal/domain/entitlement"
	"github.com/fakturio-inc/fakturio/internal/domain/profile"
	profilevo "github.com/fakturio-inc/fakturio/internal/domain/profile/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/domain/subscription"
	"github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

type CanAccessModuleQuery struct {
	AccountID          string
	Module             entitlement.ModuleKey
	RequiredPermission profilevo.PermissionLevel
}

// ModuleAccessResult is the combined allow/deny decision for one module and
// required permission level.
type ModuleAccessResult struct {
	Allowed         bool
	Reason          entitlement.DenyReason
	UpgradeRequired bool
	RequiredPlan    valueobjects.PlanTier
}

// CanAccessModuleUseCase merges plan-level feature access with the active
// profile's per-module permission grant into a single decision.
type CanAccessModuleUseCase struct {
	accountRepo      account.Repository
	profileRepo      profile.Repository
	subscriptionRepo subscription.Repository
	matrix           entitlement.PlanFeatureMatrix
	moduleMap        entitlement.ModuleFeatureMap
	logger           logger.Interface
}

func NewCanAccessModuleUseCase(
	accountRepo account.Repository,
	profileRepo profile.Repository,
	subscriptionRepo subscription.Repository,
	matrix entitlement.PlanFeatureMatrix,
	moduleMap entitlement.ModuleFeatureMap,
	logger logger.Interface,
) *CanAccessModuleUseCase {
	return &CanAccessModuleUseCase{
		accountRepo:      accountRepo,
		profileRepo:      profileRepo,
		subscriptionRepo: subscriptionRepo,
		matrix:           matrix,
		moduleMap:        moduleMap,
		logger:           logger,
	}
}

// Execute walks three independent gates in a fixed order: subscription
// state, the business-size rule for the Peppol access point, then the
// profile permission map. The order short-circuits on the first deny and
// must not be rearranged; superadmin escapes everything at the account
// level while a profile admin only escapes the permission map.
func (uc *CanAccessModuleUseCase) Execute(ctx context.Context, query CanAccessModuleQuery) (ModuleAccessResult, error) {
	if !query.Module.IsValid() {
		return ModuleAccessResult{}, apperrors.NewValidationError("unknown module", query.Module.String())
	}
	if !query.RequiredPermission.IsValid() {
		return ModuleAccessResult{}, apperrors.NewValidationError("unknown permission level", query.RequiredPermission.String())
	}

	acc, err := uc.accountRepo.GetByID(ctx, query.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "error", err, "account_id", query.AccountID)
		return ModuleAccessResult{}, fmt.Errorf("failed to get account: %w", err)
	}

	// 1. Superadmin skips every further check, including the profile gate.
	if acc.IsSuperadmin() {
		return ModuleAccessResult{Allowed: true}, nil
	}

	sub, err := uc.getSubscription(ctx, query.AccountID)
	if err != nil {
		return ModuleAccessResult{}, err
	}

	// 2. An inactive (or missing) subscription denies every module unless
	// the account holds lifetime access.
	if !acc.HasLifetimeAccess() {
		if sub == nil || !sub.IsActiveForAccess() {
			return ModuleAccessResult{
				Reason:          entitlement.ReasonSubscriptionInactive,
				UpgradeRequired: true,
			}, nil
		}
	}

	// 3. Plan gate for feature-mapped modules. Lifetime access skips it
	// along with the status check.
	if !acc.HasLifetimeAccess() {
		if feature, mapped := uc.moduleMap.FeatureFor(query.Module); mapped {
			if !uc.matrix.Resolve(sub.Plan(), feature).Allows() {
				return ModuleAccessResult{
					Reason:          entitlement.ReasonFeatureNotInPlan,
					UpgradeRequired: true,
					RequiredPlan:    sub.Plan().NextTierUp(),
				}, nil
			}
		}
	}

	// 4. The Peppol access point is additionally gated on a declared
	// business size. Fails closed when absent, independent of plan.
	if query.Module == entitlement.ModulePeppolAccessPoint {
		if size := acc.BusinessSize(); size == nil || !size.IsValid() {
			return ModuleAccessResult{Reason: entitlement.ReasonBusinessSizeRequired}, nil
		}
	}

	// 5. Profile gate. Lifetime access does not escape it.
	prof, err := uc.getActiveProfile(ctx, query.AccountID)
	if err != nil {
		return ModuleAccessResult{}, err
	}
	if prof == nil || !prof.IsActive() {
		return ModuleAccessResult{Reason: entitlement.ReasonNoActiveProfile}, nil
	}

	// 6. Profile admins bypass the permission map, but nothing above.
	if prof.IsAdmin() {
		return ModuleAccessResult{Allowed: true}, nil
	}

	// 7, 8. Permission map lookup with the required level.
	granted := prof.PermissionFor(query.Module.String())
	if granted == profilevo.PermissionNoAccess {
		return ModuleAccessResult{Reason: entitlement.ReasonPermissionDenied}, nil
	}
	if !granted.Satisfies(query.RequiredPermission) {
		return ModuleAccessResult{Reason: entitlement.ReasonInsufficientPermission}, nil
	}

	// 9. All gates passed.
	return ModuleAccessResult{Allowed: true}, nil
}

func (uc *CanAccessModuleUseCase) getSubscription(ctx context.Context, accountID string) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, nil
		}
		uc.logger.Errorw("failed to get subscription", "error", err, "account_id", accountID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

func (uc *CanAccessModuleUseCase) getActiveProfile(ctx context.Context, accountID string) (*profile.Profile, error) {
	prof, err := uc.profileRepo.GetActiveByAccountID(ctx, accountID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, nil
		}
		uc.logger.Errorw("failed to get active profile", "error", err, "account_id", accountID)
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}
	return prof, nil
}
