// Package identity turns login and sign-up input into Session User records.
//
// There is no credential store behind it. Login derives a fixed demo profile
// from the email alone: the reserved administrator address gets the admin
// profile, every other address gets the same demo member. The same email
// always produces the same role and starting stats, which is what the rest of
// the app (and its tests) rely on. Passwords are accepted and ignored.
//
// Swapping this package for real credential verification is the only change
// needed to make logins meaningful; callers depend on the Resolver methods,
// not on the demo data.
package identity

import (
	"github.com/rs/xid"

	"github.com/sakif/skillsync/internal/model"
)

const (
	// DefaultAdminEmail is the reserved administrator address.
	DefaultAdminEmail = "admin@skillsync.com"

	// DemoUserID is the fixed id every login profile carries.
	DemoUserID = "1"

	DemoPhoto    = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=faces"
	DemoLocation = "San Francisco, CA"

	// StarterBadge is granted to every new registration.
	StarterBadge = "Newbie"
	AdminBadge   = "Administrator"
)

// Resolver builds Session User records. The zero value is not usable; call
// NewResolver.
type Resolver struct {
	adminEmail string
	newID      func() string
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithIDGenerator replaces the xid-based id source used by NewAccount.
// Tests use it to get predictable ids.
func WithIDGenerator(gen func() string) Option {
	return func(r *Resolver) { r.newID = gen }
}

// NewResolver returns a Resolver that treats adminEmail as the reserved
// administrator address. An empty adminEmail falls back to DefaultAdminEmail.
func NewResolver(adminEmail string, opts ...Option) *Resolver {
	if adminEmail == "" {
		adminEmail = DefaultAdminEmail
	}
	r := &Resolver{
		adminEmail: adminEmail,
		// xid ids start with a timestamp, so registrations sort by creation time.
		newID: func() string { return xid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AdminEmail returns the reserved administrator address.
func (r *Resolver) AdminEmail() string {
	return r.adminEmail
}

// IsAdminEmail compares case-sensitively; "Admin@skillsync.com" is a member.
func (r *Resolver) IsAdminEmail(email string) bool {
	return email == r.adminEmail
}

// Resolve returns the profile for a login. The password is never inspected.
func (r *Resolver) Resolve(email, _ string) *model.User {
	if r.IsAdminEmail(email) {
		return &model.User{
			ID:            DemoUserID,
			Name:          "Admin User",
			Email:         email,
			Role:          model.RoleAdmin,
			Photo:         DemoPhoto,
			Location:      DemoLocation,
			Badges:        []string{AdminBadge},
			SkillsOffered: []string{},
			SkillsWanted:  []string{},
		}
	}

	return &model.User{
		ID:             DemoUserID,
		Name:           "Demo User",
		Email:          email,
		Role:           model.RoleUser,
		Photo:          DemoPhoto,
		Location:       DemoLocation,
		Points:         150,
		Badges:         []string{StarterBadge, "Helper"},
		Rating:         4.8,
		SwapsCompleted: 12,
		SkillsOffered:  []string{"React", "JavaScript", "UI/UX Design"},
		SkillsWanted:   []string{"Python", "Machine Learning"},
		Availability:   true,
		IsPublic:       true,
	}
}

// NewAccount builds the record for a fresh registration. Registering the
// reserved admin address still yields a plain member: sign-up never grants
// privilege. Duplicate emails are not checked.
func (r *Resolver) NewAccount(reg model.Registration) *model.User {
	return &model.User{
		ID:            r.newID(),
		Name:          reg.Name,
		Email:         reg.Email,
		Role:          model.RoleUser,
		Photo:         reg.Photo,
		Location:      reg.Location,
		Badges:        []string{StarterBadge},
		SkillsOffered: []string{},
		SkillsWanted:  []string{},
		IsPublic:      reg.IsPublic,
	}
}
