package handler

import (
	"net/http"

	"github.com/sakif/skillsync/internal/service"
)

type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// HTTP: GET /api/leaderboard?period=all-time|monthly
func (h *LeaderboardHandler) HandleRankings(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.Rankings(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HTTP: GET /api/leaderboard/badges
func (h *LeaderboardHandler) HandleBadges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.leaderboard.Badges())
}
