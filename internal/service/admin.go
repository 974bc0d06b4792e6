package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/catalog"
	"github.com/sakif/skillsync/internal/listfilter"
	"github.com/sakif/skillsync/internal/model"
)

// Moderation actions only reach the moderation log. The tables themselves
// are catalog data and never change; each action returns the row as it
// would look afterwards.
type AdminService struct {
	catalog *catalog.Catalog
	modlog  *slog.Logger
}

func NewAdminService(c *catalog.Catalog, logger *slog.Logger) *AdminService {
	return &AdminService{
		catalog: c,
		modlog:  logger.With(slog.String("component", "moderation")),
	}
}

func (s *AdminService) Stats() []model.StatCard {
	return slices.Clone(s.catalog.Admin.Stats)
}

var userStatusPresets = map[string]listfilter.Predicate[model.AdminUser]{
	"active": func(u model.AdminUser) bool { return !u.Banned },
	"banned": func(u model.AdminUser) bool { return u.Banned },
}

// Users searches name and email; status is all, active or banned.
func (s *AdminService) Users(q, status string) ([]model.AdminUser, error) {
	preset, ok := listfilter.Choice(status, userStatusPresets)
	if !ok {
		return nil, apperror.ValidationFailed("status", "Unknown status "+status)
	}
	return listfilter.Filter(s.catalog.Admin.Users,
		listfilter.Text(q,
			listfilter.Str(func(u model.AdminUser) string { return u.Name }),
			listfilter.Str(func(u model.AdminUser) string { return u.Email }),
		),
		preset,
	), nil
}

// Swaps searches both parties and both skills; status is all or a swap status.
func (s *AdminService) Swaps(q, status string) ([]model.AdminSwap, error) {
	switch model.SwapStatus(status) {
	case "", listfilter.All, model.SwapPending, model.SwapAccepted, model.SwapScheduled,
		model.SwapRejected, model.SwapCompleted, model.SwapCancelled:
	default:
		return nil, apperror.ValidationFailed("status", "Unknown status "+status)
	}
	return listfilter.Filter(s.catalog.Admin.Swaps,
		listfilter.Text(q,
			listfilter.Str(func(w model.AdminSwap) string { return w.Requester }),
			listfilter.Str(func(w model.AdminSwap) string { return w.Responder }),
			listfilter.Str(func(w model.AdminSwap) string { return w.SkillOffered }),
			listfilter.Str(func(w model.AdminSwap) string { return w.SkillWanted }),
		),
		listfilter.Equals(status, func(w model.AdminSwap) string { return string(w.Status) }),
	), nil
}

func (s *AdminService) Reports() []model.Report {
	return slices.Clone(s.catalog.Admin.Reports)
}

func (s *AdminService) Spam() []model.SpamReport {
	return slices.Clone(s.catalog.Admin.Spam)
}

func (s *AdminService) findUser(id string) (model.AdminUser, error) {
	i := slices.IndexFunc(s.catalog.Admin.Users, func(u model.AdminUser) bool { return u.ID == id })
	if i < 0 {
		return model.AdminUser{}, apperror.NotFound("user", id)
	}
	return s.catalog.Admin.Users[i], nil
}

func (s *AdminService) Ban(ctx context.Context, id string) (*model.AdminUser, error) {
	u, err := s.findUser(id)
	if err != nil {
		return nil, err
	}
	if u.Banned {
		return nil, apperror.Conflict(u.Name + " is already banned")
	}
	u.Banned = true
	u.Status = "banned"
	s.modlog.InfoContext(ctx, "user banned", slog.String("userID", id))
	return &u, nil
}

func (s *AdminService) Unban(ctx context.Context, id string) (*model.AdminUser, error) {
	u, err := s.findUser(id)
	if err != nil {
		return nil, err
	}
	if !u.Banned {
		return nil, apperror.Conflict(u.Name + " is not banned")
	}
	u.Banned = false
	u.Status = "active"
	s.modlog.InfoContext(ctx, "user unbanned", slog.String("userID", id))
	return &u, nil
}

// swapActions maps an admin action to the status it moves a swap to.
// "view" is absent: it changes nothing.
var swapActions = map[string]model.SwapStatus{
	"approve": model.SwapAccepted,
	"cancel":  model.SwapCancelled,
}

func (s *AdminService) SwapAction(ctx context.Context, id, action string) (*model.AdminSwap, error) {
	i := slices.IndexFunc(s.catalog.Admin.Swaps, func(w model.AdminSwap) bool { return w.ID == id })
	if i < 0 {
		return nil, apperror.NotFound("swap", id)
	}
	swap := s.catalog.Admin.Swaps[i]

	if action == "view" {
		return &swap, nil
	}
	next, ok := swapActions[action]
	if !ok {
		return nil, apperror.ValidationFailed("action", "Unknown swap action "+action)
	}
	// Admins only act on swaps still awaiting a response.
	if swap.Status != model.SwapPending || !swap.Status.CanTransition(next) {
		return nil, apperror.Conflict(fmt.Sprintf("Cannot %s a %s swap", action, swap.Status))
	}

	s.modlog.InfoContext(ctx, "swap moderated",
		slog.String("swapID", id),
		slog.String("action", action),
	)
	swap.Status = next
	return &swap, nil
}

var reportActions = map[string]string{
	"resolve":  "resolved",
	"escalate": "escalated",
}

func (s *AdminService) ReportAction(ctx context.Context, id, action string) (*model.Report, error) {
	i := slices.IndexFunc(s.catalog.Admin.Reports, func(r model.Report) bool { return r.ID == id })
	if i < 0 {
		return nil, apperror.NotFound("report", id)
	}
	report := s.catalog.Admin.Reports[i]

	if action == "view" {
		return &report, nil
	}
	next, ok := reportActions[action]
	if !ok {
		return nil, apperror.ValidationFailed("action", "Unknown report action "+action)
	}
	if report.Status != "pending" {
		return nil, apperror.Conflict(fmt.Sprintf("Report %s is already %s", id, report.Status))
	}

	s.modlog.InfoContext(ctx, "report moderated",
		slog.String("reportID", id),
		slog.String("action", action),
		slog.String("severity", report.Severity),
	)
	report.Status = next
	return &report, nil
}

func (s *AdminService) RejectSpam(ctx context.Context, id string) (*model.SpamReport, error) {
	i := slices.IndexFunc(s.catalog.Admin.Spam, func(r model.SpamReport) bool { return r.ID == id })
	if i < 0 {
		return nil, apperror.NotFound("spam report", id)
	}
	report := s.catalog.Admin.Spam[i]
	if report.Status != "pending" {
		return nil, apperror.Conflict(fmt.Sprintf("Spam report %s is already %s", id, report.Status))
	}

	s.modlog.InfoContext(ctx, "spam listing rejected",
		slog.String("reportID", id),
		slog.String("skill", report.Skill),
	)
	report.Status = "rejected"
	return &report, nil
}

// Broadcast records a platform-wide announcement. Delivery is out of scope;
// the message only reaches the moderation log.
func (s *AdminService) Broadcast(ctx context.Context, title, message string) (model.Notice, error) {
	if strings.TrimSpace(title) == "" {
		return model.Notice{}, apperror.ValidationFailed("title", "Title is required")
	}
	if strings.TrimSpace(message) == "" {
		return model.Notice{}, apperror.ValidationFailed("message", "Message is required")
	}
	s.modlog.InfoContext(ctx, "broadcast queued",
		slog.String("title", title),
		slog.Int("length", len(message)),
	)
	return model.Notice{Title: "Message Sent", Description: "Your announcement has been sent to all users."}, nil
}

// ExportKinds lists the tables Export can write.
var ExportKinds = []string{"users", "swaps", "feedback", "reports"}

// Export writes one admin table as CSV with a header row.
func (s *AdminService) Export(ctx context.Context, kind string, w io.Writer) error {
	var rows [][]string
	switch kind {
	case "users":
		rows = append(rows, []string{"id", "name", "email", "join_date", "status", "swaps", "rating", "last_active", "banned"})
		for _, u := range s.catalog.Admin.Users {
			rows = append(rows, []string{u.ID, u.Name, u.Email, u.JoinDate, u.Status,
				strconv.Itoa(u.Swaps), formatRating(u.Rating), u.LastActive, strconv.FormatBool(u.Banned)})
		}
	case "swaps":
		rows = append(rows, []string{"id", "requester", "responder", "skill_offered", "skill_wanted", "status", "date", "priority"})
		for _, sw := range s.catalog.Admin.Swaps {
			rows = append(rows, []string{sw.ID, sw.Requester, sw.Responder, sw.SkillOffered, sw.SkillWanted,
				string(sw.Status), sw.Date, sw.Priority})
		}
	case "feedback":
		rows = append(rows, []string{"id", "reviewer", "reviewee", "rating", "skill", "session", "date", "helpful", "comment"})
		for _, f := range s.catalog.Feedback.Reviews {
			rows = append(rows, []string{f.ID, f.Reviewer.Name, f.Reviewee.Name, strconv.Itoa(f.Rating),
				f.Skill, f.Session, f.Date, strconv.Itoa(f.Helpful), f.Comment})
		}
	case "reports":
		rows = append(rows, []string{"id", "reporter", "reported", "type", "severity", "status", "date", "description"})
		for _, r := range s.catalog.Admin.Reports {
			rows = append(rows, []string{r.ID, r.Reporter, r.Reported, r.Type, r.Severity, r.Status, r.Date, r.Description})
		}
	default:
		return apperror.NotFound("export", kind)
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("service/admin: writing %s export: %w", kind, err)
	}
	s.modlog.InfoContext(ctx, "report downloaded", slog.String("kind", kind), slog.Int("rows", len(rows)-1))
	return nil
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}
