package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakturio-inc/fakturio/internal/domain/profile/valueobjects"
)

func TestNewProfile(t *testing.T) {
	p, err := NewProfile("prof-1", "acc-1", "  Ann  ", valueobjects.ProfileRoleMember)
	require.NoError(t, err)

	assert.Equal(t, "prof-1", p.ID())
	assert.Equal(t, "acc-1", p.AccountID())
	assert.Equal(t, "Ann", p.Name())
	assert.True(t, p.IsActive())
	assert.False(t, p.IsAdmin())
	assert.Empty(t, p.Permissions())
}

func TestNewProfile_Invalid(t *testing.T) {
	_, err := NewProfile("prof-1", "acc-1", "   ", valueobjects.ProfileRoleMember)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewProfile("prof-1", "acc-1", "Ann", valueobjects.ProfileRole("owner"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestProfile_PermissionFor_Member(t *testing.T) {
	p, err := NewProfile("prof-1", "acc-1", "Ann", valueobjects.ProfileRoleMember)
	require.NoError(t, err)

	// Missing entry resolves to no access.
	assert.Equal(t, valueobjects.PermissionNoAccess, p.PermissionFor("invoices"))

	require.NoError(t, p.GrantPermission("invoices", valueobjects.PermissionViewOnly))
	assert.Equal(t, valueobjects.PermissionViewOnly, p.PermissionFor("invoices"))

	p.RevokePermission("invoices")
	assert.Equal(t, valueobjects.PermissionNoAccess, p.PermissionFor("invoices"))
}

func TestProfile_PermissionFor_AdminAlwaysFull(t *testing.T) {
	p, err := NewProfile("prof-1", "acc-1", "Ann", valueobjects.ProfileRoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, valueobjects.PermissionFullAccess, p.PermissionFor("invoices"))
	assert.Equal(t, valueobjects.PermissionFullAccess, p.PermissionFor("settings"))
}

func TestProfile_GrantPermission_InvalidLevel(t *testing.T) {
	p, err := NewProfile("prof-1", "acc-1", "Ann", valueobjects.ProfileRoleMember)
	require.NoError(t, err)

	err = p.GrantPermission("invoices", valueobjects.PermissionLevel("write"))
	assert.ErrorIs(t, err, ErrInvalidPermissionLevel)
}

func TestProfile_DeactivateActivate(t *testing.T) {
	p, err := NewProfile("prof-1", "acc-1", "Ann", valueobjects.ProfileRoleMember)
	require.NoError(t, err)

	p.Deactivate()
	assert.False(t, p.IsActive())

	v := p.Version()
	p.Deactivate()
	assert.Equal(t, v, p.Version())

	p.Activate()
	assert.True(t, p.IsActive())
}

func TestPermissionLevel_Satisfies(t *testing.T) {
	assert.True(t, valueobjects.PermissionFullAccess.Satisfies(valueobjects.PermissionViewOnly))
	assert.True(t, valueobjects.PermissionViewOnly.Satisfies(valueobjects.PermissionViewOnly))
	assert.False(t, valueobjects.PermissionViewOnly.Satisfies(valueobjects.PermissionFullAccess))
	assert.False(t, valueobjects.PermissionNoAccess.Satisfies(valueobjects.PermissionViewOnly))
	assert.True(t, valueobjects.PermissionNoAccess.Satisfies(valueobjects.PermissionNoAccess))
}
