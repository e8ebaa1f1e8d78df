package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakturio-inc/fakturio/internal/domain/account/valueobjects"
)

func TestNewAccount(t *testing.T) {
	acc, err := NewAccount("acc-1", "Owner@Example.com ")
	require.NoError(t, err)

	assert.Equal(t, "acc-1", acc.ID())
	assert.Equal(t, "owner@example.com", acc.Email())
	assert.Equal(t, valueobjects.RoleNormal, acc.Role())
	assert.False(t, acc.HasLifetimeAccess())
	assert.Nil(t, acc.BusinessSize())
	assert.Equal(t, int64(1), acc.Version())
}

func TestNewAccount_InvalidEmail(t *testing.T) {
	_, err := NewAccount("acc-1", "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewAccount("acc-1", "  ")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestAccount_BypassesSubscriptionGates(t *testing.T) {
	acc, err := NewAccount("acc-1", "owner@example.com")
	require.NoError(t, err)
	assert.False(t, acc.BypassesSubscriptionGates())

	require.NoError(t, acc.ChangeRole(valueobjects.RoleSuperadmin))
	assert.True(t, acc.IsSuperadmin())
	assert.True(t, acc.BypassesSubscriptionGates())

	require.NoError(t, acc.ChangeRole(valueobjects.RoleNormal))
	acc.GrantLifetimeAccess()
	assert.False(t, acc.IsSuperadmin())
	assert.True(t, acc.BypassesSubscriptionGates())

	acc.RevokeLifetimeAccess()
	assert.False(t, acc.BypassesSubscriptionGates())
}

func TestAccount_GrantLifetimeAccessIsIdempotent(t *testing.T) {
	acc, err := NewAccount("acc-1", "owner@example.com")
	require.NoError(t, err)

	acc.GrantLifetimeAccess()
	v := acc.Version()
	acc.GrantLifetimeAccess()
	assert.Equal(t, v, acc.Version())
}

func TestAccount_DeclareBusinessSize(t *testing.T) {
	acc, err := NewAccount("acc-1", "owner@example.com")
	require.NoError(t, err)

	err = acc.DeclareBusinessSize(valueobjects.BusinessSize("huge"))
	assert.ErrorIs(t, err, ErrInvalidBusinessSize)
	assert.Nil(t, acc.BusinessSize())

	require.NoError(t, acc.DeclareBusinessSize(valueobjects.BusinessSizeLarge))
	require.NotNil(t, acc.BusinessSize())
	assert.Equal(t, valueobjects.BusinessSizeLarge, *acc.BusinessSize())
}

func TestAccount_ChangeRole_Invalid(t *testing.T) {
	acc, err := NewAccount("acc-1", "owner@example.com")
	require.NoError(t, err)

	err = acc.ChangeRole(valueobjects.Role("root"))
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Equal(t, valueobjects.RoleNormal, acc.Role())
}
