package service

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/catalog"
	"github.com/sakif/skillsync/internal/listfilter"
	"github.com/sakif/skillsync/internal/model"
)

// HighRatedReview is the lowest star count the "high-rated" feedback filter keeps.
const HighRatedReview = 4

type FeedbackQuery struct {
	Text   string
	Filter string // all, recent, high-rated
}

var (
	reviewerName = func(f model.Feedback) string { return f.Reviewer.Name }
	revieweeName = func(f model.Feedback) string { return f.Reviewee.Name }
	reviewSkill  = func(f model.Feedback) string { return f.Skill }
	reviewText   = func(f model.Feedback) string { return f.Comment }
	reviewStars  = func(f model.Feedback) float64 { return float64(f.Rating) }
)

// reviewDate never fails: Parse validated every date when the catalog loaded.
func reviewDate(f model.Feedback) time.Time {
	t, _ := time.Parse(catalog.DateLayout, f.Date)
	return t
}

type FeedbackService struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewFeedbackService(c *catalog.Catalog, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{catalog: c, logger: logger}
}

func (s *FeedbackService) List(q FeedbackQuery) ([]model.Feedback, error) {
	preset, ok := listfilter.Choice(q.Filter, map[string]listfilter.Predicate[model.Feedback]{
		"recent":     listfilter.After(s.catalog.RecentAfter(), reviewDate),
		"high-rated": listfilter.AtLeast(HighRatedReview, reviewStars),
	})
	if !ok {
		return nil, apperror.ValidationFailed("filter", "Unknown filter "+q.Filter)
	}

	return listfilter.Filter(s.catalog.Feedback.Reviews,
		listfilter.Text(q.Text,
			listfilter.Str(reviewerName),
			listfilter.Str(revieweeName),
			listfilter.Str(reviewSkill),
			listfilter.Str(reviewText),
		),
		preset,
	), nil
}

// Stats summarises every published review, ignoring any active filter.
func (s *FeedbackService) Stats() model.FeedbackStats {
	reviews := s.catalog.Feedback.Reviews
	stats := model.FeedbackStats{
		Total:        len(reviews),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return stats
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		stats.Distribution[r.Rating]++
		stats.TotalHelpful += r.Helpful
	}
	stats.Average = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	return stats
}

// RecentSessions lists the sessions offered in the "leave a review" form.
func (s *FeedbackService) RecentSessions() []model.RecentSession {
	return slices.Clone(s.catalog.Feedback.RecentSessions)
}

// Submit validates a review and discards it; reviews are never stored.
func (s *FeedbackService) Submit(ctx context.Context, r model.Review) (model.Notice, error) {
	if err := ValidateReview(r); err != nil {
		return model.Notice{}, err
	}
	s.logger.InfoContext(ctx, "review submitted",
		slog.Int("rating", r.Rating),
		slog.String("session", r.SkillSession),
	)
	return model.Notice{Title: "Review Submitted!", Description: "Thank you for your feedback"}, nil
}
