package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/identity"
)

func TestDashboardBuild(t *testing.T) {
	c := testCatalog(t)
	svc := NewDashboardService(c, NewDirectoryService(c))

	_, err := svc.Build(nil)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	u := identity.NewResolver("").Resolve("demo@x.io", "pw")
	d, err := svc.Build(u)
	require.NoError(t, err)

	require.Len(t, d.Stats, 4)
	assert.Equal(t, "Total Points", d.Stats[0].Title)
	assert.Equal(t, "150", d.Stats[0].Value)
	assert.Equal(t, "+25 this week", d.Stats[0].Change)
	assert.Equal(t, "Skills Learned", d.Stats[1].Title)
	assert.Equal(t, "Sessions Completed", d.Stats[2].Title)
	assert.Equal(t, "Average Rating", d.Stats[3].Title)
	assert.Equal(t, "4.8", d.Stats[3].Value)

	assert.Len(t, d.RecentActivity, 4)
	assert.Len(t, d.UpcomingSessions, 3)
	assert.Len(t, d.SkillProgress, 4)
	assert.Equal(t, []string{"1"}, memberIDs(d.SuggestedMatches))
	assert.Same(t, u, d.User)
}

func TestDashboardBuild_FollowsTheSessionUser(t *testing.T) {
	c := testCatalog(t)
	svc := NewDashboardService(c, NewDirectoryService(c))

	u := identity.NewResolver("").Resolve("demo@x.io", "pw")
	u.Points = 1234
	u.Rating = 3.26

	d, err := svc.Build(u)
	require.NoError(t, err)
	assert.Equal(t, "1234", d.Stats[0].Value)
	assert.Equal(t, "3.3", d.Stats[3].Value)
}
