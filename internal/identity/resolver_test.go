package identity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/sakif/skillsync/internal/model"
)

func TestResolve_Admin(t *testing.T) {
	r := NewResolver("")

	u := r.Resolve("admin@skillsync.com", "anything")

	assert.Equal(t, model.RoleAdmin, u.Role)
	assert.Equal(t, 0, u.Points)
	assert.Equal(t, []string{"Administrator"}, u.Badges)
	assert.Empty(t, u.SkillsOffered)
	assert.Empty(t, u.SkillsWanted)
	assert.Zero(t, u.Rating)
	assert.Zero(t, u.SwapsCompleted)
	assert.False(t, u.IsPublic)
}

func TestResolve_Member(t *testing.T) {
	r := NewResolver("")

	u := r.Resolve("someone@example.com", "")

	assert.Equal(t, model.RoleUser, u.Role)
	assert.Equal(t, 150, u.Points)
	assert.Equal(t, []string{"React", "JavaScript", "UI/UX Design"}, u.SkillsOffered)
	assert.Equal(t, []string{"Python", "Machine Learning"}, u.SkillsWanted)
	assert.Equal(t, 4.8, u.Rating)
	assert.Equal(t, "someone@example.com", u.Email)
}

func TestResolve_AdminMatchIsCaseSensitive(t *testing.T) {
	r := NewResolver("")

	for _, email := range []string{"Admin@skillsync.com", "admin@skillsync.com ", "admin@SKILLSYNC.com"} {
		t.Run(email, func(t *testing.T) {
			assert.Equal(t, model.RoleUser, r.Resolve(email, "").Role)
		})
	}
}

func TestResolve_IsDeterministic(t *testing.T) {
	r := NewResolver("")

	for _, email := range []string{"admin@skillsync.com", "a@b.c", "x"} {
		first := r.Resolve(email, "one")
		second := r.Resolve(email, "two")
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Resolve(%q) differs between calls (-first +second):\n%s", email, diff)
		}
	}
}

func TestResolve_CustomAdminEmail(t *testing.T) {
	r := NewResolver("root@example.org")

	assert.Equal(t, model.RoleAdmin, r.Resolve("root@example.org", "").Role)
	assert.Equal(t, model.RoleUser, r.Resolve(DefaultAdminEmail, "").Role)
}

func TestNewAccount(t *testing.T) {
	r := NewResolver("", WithIDGenerator(func() string { return "fixed-id" }))

	u := r.NewAccount(model.Registration{
		Name:     "Jane",
		Email:    "jane@x.com",
		Password: "secret1",
		Location: "Boston, MA",
		IsPublic: true,
	})

	want := &model.User{
		ID:            "fixed-id",
		Name:          "Jane",
		Email:         "jane@x.com",
		Role:          model.RoleUser,
		Location:      "Boston, MA",
		Badges:        []string{"Newbie"},
		SkillsOffered: []string{},
		SkillsWanted:  []string{},
		IsPublic:      true,
	}
	if diff := cmp.Diff(want, u); diff != "" {
		t.Errorf("NewAccount() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewAccount_GeneratesDistinctIDs(t *testing.T) {
	r := NewResolver("")

	a := r.NewAccount(model.Registration{Name: "A", Email: "a@x.com"})
	b := r.NewAccount(model.Registration{Name: "B", Email: "a@x.com"})

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, DemoUserID, a.ID)
}

func TestNewAccount_AdminEmailDoesNotGrantAdmin(t *testing.T) {
	r := NewResolver("")

	u := r.NewAccount(model.Registration{Name: "Sneaky", Email: DefaultAdminEmail})
	assert.Equal(t, model.RoleUser, u.Role)
}
