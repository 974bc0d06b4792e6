package handler

import (
	"net/http"

	"github.com/sakif/skillsync/internal/auth"
	"github.com/sakif/skillsync/internal/service"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// HandleDashboard builds the signed-in landing view.
//
// HTTP: GET /api/dashboard
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboard.Build(auth.CurrentUser(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
