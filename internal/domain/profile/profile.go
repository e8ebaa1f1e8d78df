// Package profile contains the user profile aggregate. A profile carries the
// per-module permissions of one user inside an account; the module permission
// check combines these with the account's plan entitlements.
package profile

import (
	"errors"
	"strings"
	"time"

	"github.com/fakturio-inc/fakturio/internal/domain/profile/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/shared/biztime"
)

var (
	ErrInvalidName            = errors.New("invalid profile name")
	ErrInvalidRole            = errors.New("invalid profile role")
	ErrInvalidPermissionLevel = errors.New("invalid permission level")
)

// Profile is the aggregate root for a user profile within an account.
type Profile struct {
	id          string
	accountID   string
	name        string
	role        valueobjects.ProfileRole
	active      bool
	permissions map[string]valueobjects.PermissionLevel
	createdAt   time.Time
	updatedAt   time.Time
	version     int64
}

// NewProfile creates a new active profile. Admin profiles get full access to
// every module implicitly; member profiles start with an empty permission map
// and must be granted access per module.
func NewProfile(id, accountID, name string, role valueobjects.ProfileRole) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	now := biztime.NowUTC()
	return &Profile{
		id:          id,
		accountID:   accountID,
		name:        name,
		role:        role,
		active:      true,
		permissions: make(map[string]valueobjects.PermissionLevel),
		createdAt:   now,
		updatedAt:   now,
		version:     1,
	}, nil
}

// ReconstructProfile rebuilds a profile from persistence.
func ReconstructProfile(
	id, accountID, name string,
	role valueobjects.ProfileRole,
	active bool,
	permissions map[string]valueobjects.PermissionLevel,
	createdAt, updatedAt time.Time,
	version int64,
) *Profile {
	if permissions == nil {
		permissions = make(map[string]valueobjects.PermissionLevel)
	}
	return &Profile{
		id:          id,
		accountID:   accountID,
		name:        name,
		role:        role,
		active:      active,
		permissions: permissions,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}
}

func (p *Profile) ID() string                     { return p.id }
func (p *Profile) AccountID() string              { return p.accountID }
func (p *Profile) Name() string                   { return p.name }
func (p *Profile) Role() valueobjects.ProfileRole { return p.role }
func (p *Profile) IsActive() bool                 { return p.active }
func (p *Profile) CreatedAt() time.Time           { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time           { return p.updatedAt }
func (p *Profile) Version() int64                 { return p.version }

// IsAdmin reports whether the profile is an account admin.
func (p *Profile) IsAdmin() bool {
	return p.role == valueobjects.ProfileRoleAdmin
}

// PermissionFor returns the permission level granted for a module. Admins
// always hold full access; modules missing from a member's map resolve to
// no access.
func (p *Profile) PermissionFor(moduleKey string) valueobjects.PermissionLevel {
	if p.IsAdmin() {
		return valueobjects.PermissionFullAccess
	}
	if level, ok := p.permissions[moduleKey]; ok {
		return level
	}
	return valueobjects.PermissionNoAccess
}

// Permissions returns a copy of the permission map.
func (p *Profile) Permissions() map[string]valueobjects.PermissionLevel {
	out := make(map[string]valueobjects.PermissionLevel, len(p.permissions))
	for k, v := range p.permissions {
		out[k] = v
	}
	return out
}

// GrantPermission sets the permission level for a module.
func (p *Profile) GrantPermission(moduleKey string, level valueobjects.PermissionLevel) error {
	if !level.IsValid() {
		return ErrInvalidPermissionLevel
	}
	p.permissions[moduleKey] = level
	p.touch()
	return nil
}

// RevokePermission removes the module from the permission map, which makes
// PermissionFor resolve to no access for members.
func (p *Profile) RevokePermission(moduleKey string) {
	if _, ok := p.permissions[moduleKey]; !ok {
		return
	}
	delete(p.permissions, moduleKey)
	p.touch()
}

// Deactivate marks the profile inactive. Inactive profiles fail every module
// permission check.
func (p *Profile) Deactivate() {
	if !p.active {
		return
	}
	p.active = false
	p.touch()
}

// Activate re-enables the profile.
func (p *Profile) Activate() {
	if p.active {
		return
	}
	p.active = true
	p.touch()
}

func (p *Profile) touch() {
	p.updatedAt = biztime.NowUTC()
	p.version++
}
