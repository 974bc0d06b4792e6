package handler

import (
	"net/http"

	"github.com/sakif/skillsync/internal/model"
	"github.com/sakif/skillsync/internal/service"
)

type FeedbackHandler struct {
	feedback *service.FeedbackService
}

func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func feedbackQuery(r *http.Request) service.FeedbackQuery {
	return service.FeedbackQuery{
		Text:   r.URL.Query().Get("q"),
		Filter: r.URL.Query().Get("filter"),
	}
}

// HandleList returns published reviews.
//
// HTTP: GET /api/feedback?q=&filter=all|recent|high-rated
func (h *FeedbackHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.feedback.List(feedbackQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// HTTP: GET /api/feedback/stats
func (h *FeedbackHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.feedback.Stats())
}

// HTTP: GET /api/feedback/sessions
func (h *FeedbackHandler) HandleRecentSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.feedback.RecentSessions())
}

// HandleSubmit validates a review. Nothing is published.
//
// HTTP: POST /api/feedback
// REQUEST BODY: {"rating": 5, "comment": "...", "skillSession": "1"}
func (h *FeedbackHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var review model.Review
	if err := decodeJSON(w, r, &review); err != nil {
		writeError(w, err)
		return
	}
	notice, err := h.feedback.Submit(r.Context(), review)
	if err != nil {
		writeError(w, err)
		return
	}
	writeNotice(w, nil, notice)
}
