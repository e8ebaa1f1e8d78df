package valueobjects

// ProfileRole distinguishes the account owner's profile from invited members.
type ProfileRole string

const (
	ProfileRoleAdmin  ProfileRole = "admin"
	ProfileRoleMember ProfileRole = "member"
)

func (r ProfileRole) String() string {
	return string(r)
}

func (r ProfileRole) IsValid() bool {
	return r == ProfileRoleAdmin || r == ProfileRoleMember
}
