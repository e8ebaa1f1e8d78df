package usecases

import (
	"context"
	"fmt"

	"github.com/fakturio-inc/fakturio/internal/domain/account"
	"github.com/fakturio-inc/fakturio/internal/domain/entitlement"
	"github.com/fakturio-inc/fakturio/internal/domain/subscription"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

type CheckFeatureAccessQuery struct {
	AccountID string
	Feature   entitlement.FeatureKey
}

// CheckFeatureAccessUseCase answers whether an account may use a feature,
// and at which level. It loads the account and subscription and delegates
// the decision to the pure resolver.
type CheckFeatureAccessUseCase struct {
	accountRepo      account.Repository
	subscriptionRepo subscription.Repository
	resolver         *entitlement.Resolver
	logger           logger.Interface
}

func NewCheckFeatureAccessUseCase(
	accountRepo account.Repository,
	subscriptionRepo subscription.Repository,
	resolver *entitlement.Resolver,
	logger logger.Interface,
) *CheckFeatureAccessUseCase {
	return &CheckFeatureAccessUseCase{
		accountRepo:      accountRepo,
		subscriptionRepo: subscriptionRepo,
		resolver:         resolver,
		logger:           logger,
	}
}

func (uc *CheckFeatureAccessUseCase) Execute(ctx context.Context, query CheckFeatureAccessQuery) (entitlement.AccessResult, error) {
	if !query.Feature.IsValid() {
		return entitlement.AccessResult{}, apperrors.NewValidationError("unknown feature", query.Feature.String())
	}

	subject, err := uc.buildSubject(ctx, query.AccountID)
	if err != nil {
		return entitlement.AccessResult{}, err
	}

	return uc.resolver.ResolveFeatureAccess(subject, query.Feature), nil
}

// buildSubject assembles the resolver input. Accounts that bypass
// subscription gates do not need a subscription row; for everyone else a
// missing subscription resolves as inactive.
func (uc *CheckFeatureAccessUseCase) buildSubject(ctx context.Context, accountID string) (entitlement.Subject, error) {
	acc, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "error", err, "account_id", accountID)
		return entitlement.Subject{}, fmt.Errorf("failed to get account: %w", err)
	}

	subject := entitlement.Subject{
		Superadmin:     acc.IsSuperadmin(),
		LifetimeAccess: acc.HasLifetimeAccess(),
	}
	if subject.Superadmin || subject.LifetimeAccess {
		return subject, nil
	}

	sub, err := uc.subscriptionRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return subject, nil
		}
		uc.logger.Errorw("failed to get subscription", "error", err, "account_id", accountID)
		return entitlement.Subject{}, fmt.Errorf("failed to get subscription: %w", err)
	}

	subject.SubscriptionStatus = sub.Status()
	subject.Plan = sub.Plan()
	return subject, nil
}
