package service

import (
	"slices"
	"strconv"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/catalog"
	"github.com/sakif/skillsync/internal/model"
)

type DashboardService struct {
	catalog   *catalog.Catalog
	directory *DirectoryService
}

func NewDashboardService(c *catalog.Catalog, directory *DirectoryService) *DashboardService {
	return &DashboardService{catalog: c, directory: directory}
}

// Build assembles the dashboard for u. The points and rating tiles come from
// the Session User, everything else from the catalog.
func (s *DashboardService) Build(u *model.User) (*model.Dashboard, error) {
	if u == nil {
		return nil, apperror.Unauthorized("Please log in to view your dashboard")
	}

	d := s.catalog.Dashboard
	stats := []model.StatCard{
		{Title: "Total Points", Value: strconv.Itoa(u.Points), Change: d.PointsChange},
	}
	stats = append(stats, d.Stats...)
	stats = append(stats, model.StatCard{
		Title:  "Average Rating",
		Value:  formatRating(u.Rating),
		Change: d.RatingChange,
	})

	return &model.Dashboard{
		User:             u,
		Stats:            stats,
		RecentActivity:   slices.Clone(d.Activity),
		UpcomingSessions: slices.Clone(d.Upcoming),
		SkillProgress:    slices.Clone(d.Progress),
		SuggestedMatches: s.directory.SuggestedMatches(u),
	}, nil
}
