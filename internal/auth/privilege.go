package auth

import "github.com/sakif/skillsync/internal/model"

// IsAdmin is the only privilege check in SkillSync. It is true exactly when
// someone is signed in with the admin role.
func IsAdmin(u *model.User) bool {
	return u != nil && u.Role == model.RoleAdmin
}
