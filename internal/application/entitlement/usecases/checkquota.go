package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/fakturio-inc/fakturio/internal/domain/account"
	"github.com/fakturio-inc/fakturio/internal/domain/entitlement"
	"github.com/fakturio-inc/fakturio/internal/domain/subscription"
	"github.com/fakturio-inc/fakturio/internal/shared/biztime"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

// QuotaResult reports where an account stands against one quota within the
// current billing cycle.
type QuotaResult struct {
	QuotaKey    entitlement.QuotaKey
	WithinLimit bool
	Unlimited   bool
	Limit       int64
	Usage       int64
	Remaining   int64
	CycleStart  time.Time
}

// CheckQuotaUseCase computes current usage within the account's billing
// cycle and compares it to the plan's quota limit. The count and the
// caller's subsequent insert are not one transaction, so the limit is
// advisory: two concurrent checks can both pass and overrun by one.
type CheckQuotaUseCase struct {
	accountRepo      account.Repository
	subscriptionRepo subscription.Repository
	usageCounter     UsageCounter
	quotas           entitlement.QuotaTable
	logger           logger.Interface
}

func NewCheckQuotaUseCase(
	accountRepo account.Repository,
	subscriptionRepo subscription.Repository,
	usageCounter UsageCounter,
	quotas entitlement.QuotaTable,
	logger logger.Interface,
) *CheckQuotaUseCase {
	return &CheckQuotaUseCase{
		accountRepo:      accountRepo,
		subscriptionRepo: subscriptionRepo,
		usageCounter:     usageCounter,
		quotas:           quotas,
		logger:           logger,
	}
}

func (uc *CheckQuotaUseCase) Execute(ctx context.Context, accountID string, key entitlement.QuotaKey) (QuotaResult, error) {
	if !key.IsValid() {
		return QuotaResult{}, apperrors.NewValidationError("unknown quota key", key.String())
	}

	acc, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "error", err, "account_id", accountID)
		return QuotaResult{}, fmt.Errorf("failed to get account: %w", err)
	}

	if acc.BypassesSubscriptionGates() {
		return QuotaResult{
			QuotaKey:    key,
			WithinLimit: true,
			Unlimited:   true,
			Limit:       entitlement.UnlimitedQuota,
		}, nil
	}

	limit := uc.limitFor(ctx, accountID, key)
	if limit == entitlement.UnlimitedQuota {
		return QuotaResult{
			QuotaKey:    key,
			WithinLimit: true,
			Unlimited:   true,
			Limit:       entitlement.UnlimitedQuota,
		}, nil
	}

	cycleStart, err := uc.resolveCycleStart(ctx, accountID)
	if err != nil {
		return QuotaResult{}, err
	}

	usage, err := uc.usageCounter.CountSince(ctx, accountID, key, cycleStart)
	if err != nil {
		uc.logger.Errorw("failed to count usage", "error", err, "account_id", accountID, "quota_key", key)
		return QuotaResult{}, fmt.Errorf("failed to count usage: %w", err)
	}

	remaining := limit - usage
	if remaining < 0 {
		remaining = 0
	}

	return QuotaResult{
		QuotaKey:    key,
		WithinLimit: usage < limit,
		Limit:       limit,
		Usage:       usage,
		Remaining:   remaining,
		CycleStart:  cycleStart,
	}, nil
}

// limitFor resolves the plan's limit for the key. Accounts without a
// subscription get a zero limit, which fails closed.
func (uc *CheckQuotaUseCase) limitFor(ctx context.Context, accountID string, key entitlement.QuotaKey) int64 {
	sub, err := uc.subscriptionRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if !apperrors.IsNotFoundError(err) {
			uc.logger.Warnw("failed to get subscription for quota limit, failing closed",
				"error", err, "account_id", accountID)
		}
		return 0
	}
	return uc.quotas.Limit(sub.Plan(), key)
}

// resolveCycleStart anchors the usage window to current_period_start of the
// most recent billable subscription. When no such subscription exists, or
// its period start is unset or still in the future (a stale projection), the
// window falls back to the first instant of the current calendar month UTC.
func (uc *CheckQuotaUseCase) resolveCycleStart(ctx context.Context, accountID string) (time.Time, error) {
	now := biztime.NowUTC()

	sub, err := uc.subscriptionRepo.GetMostRecentBillable(ctx, accountID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return biztime.StartOfMonthUTC(now), nil
		}
		uc.logger.Errorw("failed to get billable subscription", "error", err, "account_id", accountID)
		return time.Time{}, fmt.Errorf("failed to get billable subscription: %w", err)
	}

	start := sub.CurrentPeriodStart()
	if start == nil || start.After(now) {
		return biztime.StartOfMonthUTC(now), nil
	}
	return biztime.ToUTC(*start), nil
}
