package valueobjects

// Role represents the account-level role.
type Role string

const (
	RoleNormal     Role = "normal"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleNormal, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// IsSuperadmin reports whether the role bypasses every entitlement gate.
func (r Role) IsSuperadmin() bool {
	return r == RoleSuperadmin
}
