package service

import (
	"cmp"
	"slices"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/catalog"
	"github.com/sakif/skillsync/internal/model"
)

const (
	PeriodAllTime = "all-time"
	PeriodMonthly = "monthly"
)

type LeaderboardService struct {
	catalog *catalog.Catalog
}

func NewLeaderboardService(c *catalog.Catalog) *LeaderboardService {
	return &LeaderboardService{catalog: c}
}

// Rankings orders members by total points or by this month's points and
// numbers them from 1. Ties keep catalog order.
func (s *LeaderboardService) Rankings(period string) ([]model.LeaderboardEntry, error) {
	var score func(model.LeaderboardEntry) int
	switch period {
	case "", PeriodAllTime:
		score = func(e model.LeaderboardEntry) int { return e.Points }
	case PeriodMonthly:
		score = func(e model.LeaderboardEntry) int { return e.MonthlyPoints }
	default:
		return nil, apperror.ValidationFailed("period", "Unknown period "+period)
	}

	entries := slices.Clone(s.catalog.Leaderboard.Entries)
	slices.SortStableFunc(entries, func(a, b model.LeaderboardEntry) int {
		return cmp.Compare(score(b), score(a))
	})
	for i := range entries {
		entries[i].Badges = slices.Clone(entries[i].Badges)
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (s *LeaderboardService) Badges() []model.Badge {
	return slices.Clone(s.catalog.Leaderboard.Badges)
}
