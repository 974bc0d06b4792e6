package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/skillsync/internal/model"
	"github.com/sakif/skillsync/internal/service"
)

// AdminHandler serves the moderation API. It is mounted behind
// auth.RequireAdmin, so every handler here may assume an administrator.
type AdminHandler struct {
	admin  *service.AdminService
	logger *slog.Logger
}

func NewAdminHandler(admin *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// HTTP: GET /api/admin/stats
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.admin.Stats())
}

// HTTP: GET /api/admin/users?q=&status=all|active|banned
func (h *AdminHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.Users(r.URL.Query().Get("q"), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HTTP: GET /api/admin/swaps?q=&status=
func (h *AdminHandler) HandleSwaps(w http.ResponseWriter, r *http.Request) {
	swaps, err := h.admin.Swaps(r.URL.Query().Get("q"), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, swaps)
}

// HTTP: GET /api/admin/reports
func (h *AdminHandler) HandleReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.admin.Reports())
}

// HTTP: GET /api/admin/spam
func (h *AdminHandler) HandleSpam(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.admin.Spam())
}

// HTTP: POST /api/admin/users/{id}/ban
func (h *AdminHandler) HandleBan(w http.ResponseWriter, r *http.Request) {
	u, err := h.admin.Ban(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeNotice(w, u, model.Notice{Title: "User Banned", Description: u.Name + " has been banned from the platform."})
}

// HTTP: POST /api/admin/users/{id}/unban
func (h *AdminHandler) HandleUnban(w http.ResponseWriter, r *http.Request) {
	u, err := h.admin.Unban(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeNotice(w, u, model.Notice{Title: "User Unbanned", Description: u.Name + " can use the platform again."})
}

// HandleSwapAction views, approves or cancels a swap.
//
// HTTP: POST /api/admin/swaps/{id}/{action}
func (h *AdminHandler) HandleSwapAction(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	swap, err := h.admin.SwapAction(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeNotice(w, swap, model.Notice{Title: "Swap " + action, Description: "Swap " + swap.ID + " is " + string(swap.Status) + "."})
}

// HandleReportAction views, resolves or escalates a report.
//
// HTTP: POST /api/admin/reports/{id}/{action}
func (h *AdminHandler) HandleReportAction(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	report, err := h.admin.ReportAction(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeNotice(w, report, model.Notice{Title: "Report " + action, Description: "Report " + report.ID + " is " + report.Status + "."})
}

// HTTP: POST /api/admin/spam/{id}/reject
func (h *AdminHandler) HandleRejectSpam(w http.ResponseWriter, r *http.Request) {
	report, err := h.admin.RejectSpam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeNotice(w, report, model.Notice{Title: "Listing Rejected", Description: report.Skill + " has been removed."})
}

type broadcastRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// HTTP: POST /api/admin/broadcast
func (h *AdminHandler) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	notice, err := h.admin.Broadcast(r.Context(), req.Title, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeNotice(w, nil, notice)
}

// HandleExport downloads one admin table as CSV.
//
// HTTP: GET /api/admin/export/{kind}   kind = users|swaps|feedback|reports
//
// The CSV is rendered into a buffer first so an unknown kind can still
// answer with a JSON error instead of a half-written attachment.
func (h *AdminHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var buf bytes.Buffer
	if err := h.admin.Export(r.Context(), kind, &buf); err != nil {
		writeError(w, err)
		return
	}

	filename := "skillsync-" + kind + "-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("export interrupted", slog.String("kind", kind), slog.String("error", err.Error()))
	}
}
