package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/model"
)

func reviewIDs(fs []model.Feedback) []string {
	ids := make([]string, len(fs))
	for i, f := range fs {
		ids[i] = f.ID
	}
	return ids
}

func TestFeedbackList(t *testing.T) {
	svc := NewFeedbackService(testCatalog(t), testLogger)

	tests := []struct {
		name  string
		query FeedbackQuery
		want  []string
	}{
		{"everything", FeedbackQuery{Filter: "all"}, []string{"1", "2", "3", "4", "5"}},
		// 2024-01-10 itself is not recent.
		{"recent", FeedbackQuery{Filter: "recent"}, []string{"1", "2"}},
		{"high-rated", FeedbackQuery{Filter: "high-rated"}, []string{"1", "2", "3", "4", "5"}},
		{"text on reviewer, reviewee and comment", FeedbackQuery{Text: "mike"}, []string{"1", "4"}},
		{"text on skill", FeedbackQuery{Text: "ux research"}, []string{"5"}},
		{"text and preset", FeedbackQuery{Text: "python", Filter: "recent"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, reviewIDs(got))
		})
	}

	t.Run("unknown filter", func(t *testing.T) {
		_, err := svc.List(FeedbackQuery{Filter: "oldest"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})
}

func TestFeedbackList_HighRatedDropsLowStars(t *testing.T) {
	c := testCatalog(t)
	c.Feedback.Reviews[1].Rating = 3
	svc := NewFeedbackService(c, testLogger)

	got, err := svc.List(FeedbackQuery{Filter: "high-rated"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "4", "5"}, reviewIDs(got))
}

func TestFeedbackStats(t *testing.T) {
	stats := NewFeedbackService(testCatalog(t), testLogger).Stats()

	assert.Equal(t, 5, stats.Total)
	assert.InDelta(t, 4.6, stats.Average, 1e-9)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 2, 5: 3}, stats.Distribution)
	assert.Equal(t, 61, stats.TotalHelpful)
}

func TestFeedbackStats_Empty(t *testing.T) {
	c := testCatalog(t)
	c.Feedback.Reviews = nil

	stats := NewFeedbackService(c, testLogger).Stats()
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Average)
	assert.Len(t, stats.Distribution, 5)
}

func TestFeedbackSubmit(t *testing.T) {
	svc := NewFeedbackService(testCatalog(t), testLogger)
	ctx := context.Background()

	_, err := svc.Submit(ctx, model.Review{Comment: "great"})
	assert.EqualError(t, err, "Please select a rating")

	notice, err := svc.Submit(ctx, model.Review{Rating: 4, SkillSession: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Review Submitted!", notice.Title)

	// Submissions are never published.
	all, err := svc.List(FeedbackQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Len(t, svc.RecentSessions(), 3)
}
