package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fakturio-inc/fakturio/internal/domain/account"
	accountvo "github.com/fakturio-inc/fakturio/internal/domain/account/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/domain/entitlement"
	"github.com/fakturio-inc/fakturio/internal/domain/profile"
	profilevo "github.com/fakturio-inc/fakturio/internal/domain/profile/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/domain/subscription"
	subvo "github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

type nopLogger struct{}

func newNopLogger() logger.Interface { return &nopLogger{} }

func (l *nopLogger) Debug(msg string, args ...any)                   {}
func (l *nopLogger) Info(msg string, args ...any)                    {}
func (l *nopLogger) Warn(msg string, args ...any)                    {}
func (l *nopLogger) Error(msg string, args ...any)                   {}
func (l *nopLogger) With(args ...any) logger.Interface               { return l }
func (l *nopLogger) Named(name string) logger.Interface              { return l }
func (l *nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}

type fakeAccountRepo struct {
	account *account.Account
	err     error
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (*account.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.account == nil {
		return nil, apperrors.NewNotFoundError("account not found")
	}
	return f.account, nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	return f.GetByID(ctx, email)
}

func (f *fakeAccountRepo) Create(ctx context.Context, acc *account.Account) error { return nil }
func (f *fakeAccountRepo) Update(ctx context.Context, acc *account.Account) error { return nil }

type fakeProfileRepo struct {
	profile *profile.Profile
	err     error
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	return f.GetActiveByAccountID(ctx, id)
}

func (f *fakeProfileRepo) GetActiveByAccountID(ctx context.Context, accountID string) (*profile.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.profile == nil {
		return nil, apperrors.NewNotFoundError("no active profile")
	}
	return f.profile, nil
}

func (f *fakeProfileRepo) ListByAccountID(ctx context.Context, accountID string) ([]*profile.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) Create(ctx context.Context, prof *profile.Profile) error { return nil }
func (f *fakeProfileRepo) Update(ctx context.Context, prof *profile.Profile) error { return nil }

type fakeSubscriptionRepo struct {
	sub      *subscription.Subscription
	billable *subscription.Subscription
	err      error
}

func (f *fakeSubscriptionRepo) GetByID(ctx context.Context, id string) (*subscription.Subscription, error) {
	return f.GetByAccountID(ctx, id)
}

func (f *fakeSubscriptionRepo) GetByAccountID(ctx context.Context, accountID string) (*subscription.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}
	return f.sub, nil
}

func (f *fakeSubscriptionRepo) GetByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*subscription.Subscription, error) {
	return f.GetByAccountID(ctx, stripeSubID)
}

func (f *fakeSubscriptionRepo) GetMostRecentBillable(ctx context.Context, accountID string) (*subscription.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.billable == nil {
		return nil, apperrors.NewNotFoundError("no billable subscription")
	}
	return f.billable, nil
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, sub *subscription.Subscription) error {
	return nil
}

func (f *fakeSubscriptionRepo) Update(ctx context.Context, sub *subscription.Subscription) error {
	return nil
}

type fakeUsageCounter struct {
	count    int64
	err      error
	gotSince time.Time
	gotKey   entitlement.QuotaKey
}

func (f *fakeUsageCounter) CountSince(ctx context.Context, accountID string, key entitlement.QuotaKey, since time.Time) (int64, error) {
	f.gotSince = since
	f.gotKey = key
	return f.count, f.err
}

func testAccount(t *testing.T, role accountvo.Role, lifetime bool) *account.Account {
	t.Helper()
	acc, err := account.NewAccount("acc-1", "owner@example.com")
	require.NoError(t, err)
	require.NoError(t, acc.ChangeRole(role))
	if lifetime {
		acc.GrantLifetimeAccess()
	}
	return acc
}

func testSubscription(t *testing.T, plan subvo.PlanTier, status subvo.SubscriptionStatus) *subscription.Subscription {
	t.Helper()
	sub, err := subscription.NewTrialSubscription("sub-1", "acc-1", plan, subvo.IntervalMonthly)
	require.NoError(t, err)
	if status != subvo.StatusTrial {
		require.NoError(t, sub.SyncFromProcessor(status, nil, nil, false, time.Now().UTC()))
	}
	return sub
}

func testProfile(t *testing.T, role profilevo.ProfileRole) *profile.Profile {
	t.Helper()
	prof, err := profile.NewProfile("prof-1", "acc-1", "Ann", role)
	require.NoError(t, err)
	return prof
}
