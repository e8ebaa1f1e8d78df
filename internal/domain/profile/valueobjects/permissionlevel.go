package valueobjects

// PermissionLevel is a per-module permission granted to a profile.
type PermissionLevel string

const (
	PermissionNoAccess   PermissionLevel = "no_access"
	PermissionViewOnly   PermissionLevel = "view_only"
	PermissionFullAccess PermissionLevel = "full_access"
)

func (p PermissionLevel) String() string {
	return string(p)
}

func (p PermissionLevel) IsValid() bool {
	switch p {
	case PermissionNoAccess, PermissionViewOnly, PermissionFullAccess:
		return true
	}
	return false
}

// rank orders permission levels for comparison. Unknown levels rank lowest.
func (p PermissionLevel) rank() int {
	switch p {
	case PermissionViewOnly:
		return 1
	case PermissionFullAccess:
		return 2
	default:
		return 0
	}
}

// Satisfies reports whether the level grants at least the required level.
func (p PermissionLevel) Satisfies(required PermissionLevel) bool {
	return p.rank() >= required.rank()
}
