// Package model defines the data structures used throughout the application.
// Shared shapes (like Counterpart) are composed into the structs that use
// them.
package model

// Role is the privilege level of a Session User.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the Session User: the one mutable record of a browsing session.
//
// The JSON tags double as the persisted layout and as the key space for
// partial updates, so renaming a tag is a schema change.
//
// There is deliberately no IsAdmin field. Privilege is derived from Role by
// auth.IsAdmin and only appears in API views.
type User struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           Role     `json:"role"`
	Photo          string   `json:"photo"`
	Location       string   `json:"location"`
	Bio            string   `json:"bio"`
	Points         int      `json:"points"`
	Badges         []string `json:"badges"`
	Rating         float64  `json:"rating"`
	SwapsCompleted int      `json:"swapsCompleted"`
	SkillsOffered  []string `json:"skillsOffered"`
	SkillsWanted   []string `json:"skillsWanted"`
	Availability   bool     `json:"availability"`
	IsPublic       bool     `json:"isPublic"` // declared, not enforced anywhere
}

// Clone returns a deep copy so callers can't alias the store's slices.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Badges = cloneStrings(u.Badges)
	c.SkillsOffered = cloneStrings(u.SkillsOffered)
	c.SkillsWanted = cloneStrings(u.SkillsWanted)
	return &c
}

// Registration carries the profile fields a visitor submits on sign-up.
// Password fields are validated by the form layer and never stored.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Location        string `json:"location"`
	Photo           string `json:"photo"`
	IsPublic        bool   `json:"isPublic"`
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
