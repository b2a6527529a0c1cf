package permission

// Role is the closed set of authorization levels a user can hold.
type Role string

const (
	// RoleUser is the default role for registered users.
	RoleUser Role = "user"

	// RoleModerator may delete any review or comment.
	RoleModerator Role = "moderator"

	// RoleAdmin has full write access to catalog and user records.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// AtLeast reports whether r meets or exceeds the target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy position. Gaps leave room for
// intermediate roles.
func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
