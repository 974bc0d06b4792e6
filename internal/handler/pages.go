// Package handler contains the HTTP request handlers for SkillSync.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (query params, body, path values)
// 2. Call a service
// 3. Write the HTTP response (status code, headers, body)
//
// Handlers hold no page logic of their own; they are the glue between HTTP
// and the service package. API handlers answer JSON, PageHandler renders
// the embedded HTML templates.
package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/skillsync/internal/auth"
	"github.com/sakif/skillsync/internal/model"
	"github.com/sakif/skillsync/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames are the page templates; each one is parsed together with
// base.html and fills its {{template "content"}} slot.
var pageNames = []string{
	"home", "login", "register", "dashboard", "browse", "requests",
	"feedback", "leaderboard", "profile", "admin", "message",
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"stars": func(n int) string {
		if n < 0 {
			n = 0
		}
		if n > 5 {
			n = 5
		}
		return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
	},
}

// PageServices are the services the pages read from.
type PageServices struct {
	Directory   *service.DirectoryService
	Feedback    *service.FeedbackService
	Requests    *service.RequestService
	Leaderboard *service.LeaderboardService
	Dashboard   *service.DashboardService
	Admin       *service.AdminService
}

// PageHandler renders the HTML pages. Templates are parsed once at startup.
type PageHandler struct {
	pages  map[string]*template.Template
	svc    PageServices
	logger *slog.Logger
}

// NewPageHandler parses every page template. A template error here is a
// build bug, so it fails startup rather than the first request.
func NewPageHandler(svc PageServices, logger *slog.Logger) (*PageHandler, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/base.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("handler: parsing %s page: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &PageHandler{pages: pages, svc: svc, logger: logger}, nil
}

// pageData is what base.html sees. Content is the page's own data.
type pageData struct {
	Title   string
	Theme   string
	Path    string
	User    *model.User
	IsAdmin bool
	Content any
}

// message is the content of a card-only page: denials and not-found.
type message struct {
	Heading     string
	Message     string
	ActionHref  string
	ActionLabel string
}

// render executes a page into a buffer first, so a template failure can
// still answer 500 instead of a half-written page.
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, content any) {
	user := auth.CurrentUser(r.Context())
	data := pageData{
		Title:   title,
		Theme:   ThemeFrom(r),
		Path:    r.URL.Path,
		User:    user,
		IsAdmin: auth.IsAdmin(user),
		Content: content,
	}

	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *PageHandler) renderMessage(w http.ResponseWriter, r *http.Request, status int, m message) {
	h.render(w, r, status, "message", m.Heading, m)
}

// signInRequired renders the card shown on member-only pages to a visitor.
func (h *PageHandler) signInRequired(w http.ResponseWriter, r *http.Request, what string) {
	h.renderMessage(w, r, http.StatusUnauthorized, message{
		Heading:     "Sign in required",
		Message:     "Please log in to view " + what + ".",
		ActionHref:  "/login",
		ActionLabel: "Sign in",
	})
}

// pageError renders a service error as a message card.
func (h *PageHandler) pageError(w http.ResponseWriter, r *http.Request, err error) {
	status, _, title := errorKind(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("page failed", slog.String("path", r.URL.Path), slog.String("error", msg))
		msg = "Something went wrong. Please try again."
	}
	h.renderMessage(w, r, status, message{Heading: title, Message: msg, ActionHref: "/", ActionLabel: "Back home"})
}

// HTTP: GET /
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home", "Home", nil)
}

// HTTP: GET /login
func (h *PageHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", "Sign in", struct{ Admin bool }{false})
}

// HTTP: GET /admin/login
func (h *PageHandler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", "Admin sign in", struct{ Admin bool }{true})
}

// HTTP: GET /register
func (h *PageHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register", "Join", nil)
}

// HTTP: GET /dashboard
func (h *PageHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r.Context())
	if user == nil {
		h.signInRequired(w, r, "your dashboard")
		return
	}
	d, err := h.svc.Dashboard.Build(user)
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "dashboard", "Dashboard", d)
}

// HTTP: GET /browse?q=&skill=&location=&filter=
func (h *PageHandler) HandleBrowse(w http.ResponseWriter, r *http.Request) {
	q := memberQuery(r)
	members, err := h.svc.Directory.Browse(q)
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "browse", "Browse", struct {
		Query     service.MemberQuery
		Members   []model.Member
		Skills    []string
		Locations []string
	}{q, members, h.svc.Directory.Skills(), h.svc.Directory.Locations()})
}

// HTTP: GET /requests
func (h *PageHandler) HandleRequests(w http.ResponseWriter, r *http.Request) {
	if auth.CurrentUser(r.Context()) == nil {
		h.signInRequired(w, r, "your swap requests")
		return
	}
	h.render(w, r, http.StatusOK, "requests", "Requests", h.svc.Requests.List())
}

// HTTP: GET /feedback?q=&filter=
func (h *PageHandler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	q := feedbackQuery(r)
	reviews, err := h.svc.Feedback.List(q)
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "feedback", "Feedback", struct {
		Query    service.FeedbackQuery
		Reviews  []model.Feedback
		Stats    model.FeedbackStats
		StarRows []int
		Sessions []model.RecentSession
	}{q, reviews, h.svc.Feedback.Stats(), []int{5, 4, 3, 2, 1}, h.svc.Feedback.RecentSessions()})
}

// HTTP: GET /leaderboard?period=all-time|monthly
func (h *PageHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	entries, err := h.svc.Leaderboard.Rankings(period)
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "leaderboard", "Leaderboard", struct {
		Period  string
		Entries []model.LeaderboardEntry
		Badges  []model.Badge
	}{period, entries, h.svc.Leaderboard.Badges()})
}

// HTTP: GET /profile
func (h *PageHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if auth.CurrentUser(r.Context()) == nil {
		h.signInRequired(w, r, "your profile")
		return
	}
	h.render(w, r, http.StatusOK, "profile", "Profile", nil)
}

// HandleAdmin renders the moderation dashboard. Anyone who is not an
// administrator, signed in or not, gets the access-denied card in place.
// There is no redirect.
//
// HTTP: GET /admin
func (h *PageHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdmin(auth.CurrentUser(r.Context())) {
		h.renderMessage(w, r, http.StatusForbidden, message{
			Heading:     "Access Denied",
			Message:     "You don't have permission to access this page.",
			ActionHref:  "/",
			ActionLabel: "Return Home",
		})
		return
	}

	users, err := h.svc.Admin.Users("", "")
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	swaps, err := h.svc.Admin.Swaps("", "")
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "admin", "Admin", struct {
		Stats       []model.StatCard
		Users       []model.AdminUser
		Swaps       []model.AdminSwap
		Reports     []model.Report
		Spam        []model.SpamReport
		ExportKinds []string
	}{h.svc.Admin.Stats(), users, swaps, h.svc.Admin.Reports(), h.svc.Admin.Spam(), service.ExportKinds})
}

// HandleNotFound is the catch-all for unknown pages.
func (h *PageHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderMessage(w, r, http.StatusNotFound, message{
		Heading:     "404",
		Message:     "Oops! Page not found",
		ActionHref:  "/",
		ActionLabel: "Return to Home",
	})
}
