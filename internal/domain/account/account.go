// Package account contains the account aggregate and its value objects.
package account

import (
	"errors"
	"strings"
	"time"

	"github.com/fakturio-inc/fakturio/internal/domain/account/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/shared/biztime"
)

var (
	ErrInvalidEmail        = errors.New("invalid email")
	ErrInvalidRole         = errors.New("invalid account role")
	ErrInvalidBusinessSize = errors.New("invalid business size")
)

// Account is the aggregate root for a tenant account. Access checks read the
// role and lifetime flag from here; everything billable hangs off the
// subscription aggregate instead.
type Account struct {
	id             string
	email          string
	role           valueobjects.Role
	lifetimeAccess bool
	businessSize   *valueobjects.BusinessSize
	createdAt      time.Time
	updatedAt      time.Time
	version        int64
}

// NewAccount creates a new account with the normal role.
func NewAccount(id, email string) (*Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	now := biztime.NowUTC()
	return &Account{
		id:        id,
		email:     email,
		role:      valueobjects.RoleNormal,
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

// ReconstructAccount rebuilds an account from persistence.
func ReconstructAccount(
	id, email string,
	role valueobjects.Role,
	lifetimeAccess bool,
	businessSize *valueobjects.BusinessSize,
	createdAt, updatedAt time.Time,
	version int64,
) *Account {
	return &Account{
		id:             id,
		email:          email,
		role:           role,
		lifetimeAccess: lifetimeAccess,
		businessSize:   businessSize,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		version:        version,
	}
}

func (a *Account) ID() string              { return a.id }
func (a *Account) Email() string           { return a.email }
func (a *Account) Role() valueobjects.Role { return a.role }
func (a *Account) HasLifetimeAccess() bool { return a.lifetimeAccess }
func (a *Account) CreatedAt() time.Time    { return a.createdAt }
func (a *Account) UpdatedAt() time.Time    { return a.updatedAt }
func (a *Account) Version() int64          { return a.version }

// BusinessSize returns the declared business size, or nil when the account
// has not declared one yet.
func (a *Account) BusinessSize() *valueobjects.BusinessSize {
	return a.businessSize
}

// IsSuperadmin reports whether the account bypasses all entitlement gates.
func (a *Account) IsSuperadmin() bool {
	return a.role.IsSuperadmin()
}

// BypassesSubscriptionGates reports whether subscription status and plan
// checks are skipped entirely for this account. Profile permissions still
// apply to lifetime accounts; superadmins skip those too.
func (a *Account) BypassesSubscriptionGates() bool {
	return a.role.IsSuperadmin() || a.lifetimeAccess
}

// ChangeRole updates the account role.
func (a *Account) ChangeRole(role valueobjects.Role) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	a.role = role
	a.touch()
	return nil
}

// GrantLifetimeAccess marks the account as exempt from subscription checks.
func (a *Account) GrantLifetimeAccess() {
	if a.lifetimeAccess {
		return
	}
	a.lifetimeAccess = true
	a.touch()
}

// RevokeLifetimeAccess removes the subscription exemption.
func (a *Account) RevokeLifetimeAccess() {
	if !a.lifetimeAccess {
		return
	}
	a.lifetimeAccess = false
	a.touch()
}

// DeclareBusinessSize records the account's business size.
func (a *Account) DeclareBusinessSize(size valueobjects.BusinessSize) error {
	if !size.IsValid() {
		return ErrInvalidBusinessSize
	}
	a.businessSize = &size
	a.touch()
	return nil
}

func (a *Account) touch() {
	a.updatedAt = biztime.NowUTC()
	a.version++
}
