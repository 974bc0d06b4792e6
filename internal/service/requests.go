package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/catalog"
	"github.com/sakif/skillsync/internal/model"
)

// RequestLists groups the three tabs of the Requests page.
type RequestLists struct {
	Incoming []model.SwapRequest `json:"incoming"`
	Outgoing []model.SwapRequest `json:"outgoing"`
	Accepted []model.SwapRequest `json:"accepted"`
}

// RequestOutcome is the state a request would be in after an action. The
// catalog itself is never changed, so reloading the page shows the original.
type RequestOutcome struct {
	Request model.SwapRequest `json:"request"`
	Notice  model.Notice      `json:"notice"`
}

// RequestService validates swap request actions against the status lifecycle.
type RequestService struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewRequestService(c *catalog.Catalog, logger *slog.Logger) *RequestService {
	return &RequestService{catalog: c, logger: logger}
}

func (s *RequestService) List() RequestLists {
	return RequestLists{
		Incoming: slices.Clone(s.catalog.Requests.Incoming),
		Outgoing: slices.Clone(s.catalog.Requests.Outgoing),
		Accepted: slices.Clone(s.catalog.Requests.Accepted),
	}
}

func (s *RequestService) Accept(ctx context.Context, id string) (*RequestOutcome, error) {
	return s.transition(ctx, id, "incoming", model.SwapAccepted, model.Notice{
		Title:       "Request Accepted!",
		Description: "The skill swap has been scheduled. Check your accepted swaps tab.",
	})
}

func (s *RequestService) Reject(ctx context.Context, id string) (*RequestOutcome, error) {
	return s.transition(ctx, id, "incoming", model.SwapRejected, model.Notice{
		Title:       "Request Rejected",
		Description: "The request has been declined.",
	})
}

// Cancel withdraws one of the caller's own outgoing requests.
func (s *RequestService) Cancel(ctx context.Context, id string) (*RequestOutcome, error) {
	return s.transition(ctx, id, "outgoing", model.SwapCancelled, model.Notice{
		Title:       "Request Deleted",
		Description: "Your outgoing request has been removed.",
	})
}

func (s *RequestService) transition(ctx context.Context, id, wantList string, next model.SwapStatus, notice model.Notice) (*RequestOutcome, error) {
	req, list, ok := s.catalog.SwapRequest(id)
	if !ok {
		return nil, apperror.NotFound("swap request", id)
	}
	if list != wantList {
		return nil, apperror.Conflict(fmt.Sprintf("Request %s is not an %s request", id, wantList))
	}
	if !req.Status.CanTransition(next) {
		return nil, apperror.Conflict(fmt.Sprintf("Cannot move a %s request to %s", req.Status, next))
	}

	s.logger.InfoContext(ctx, "swap request status changed",
		slog.String("requestID", id),
		slog.String("from", string(req.Status)),
		slog.String("to", string(next)),
	)
	req.Status = next
	return &RequestOutcome{Request: req, Notice: notice}, nil
}

// Propose builds the outgoing request for a Browse page "Request Swap". The
// draft is validated against the member catalog and then discarded.
func (s *RequestService) Propose(ctx context.Context, draft model.SwapDraft) (*RequestOutcome, error) {
	if err := ValidateSwapDraft(draft); err != nil {
		return nil, err
	}
	member, ok := s.catalog.Member(draft.MemberID)
	if !ok {
		return nil, apperror.NotFound("member", draft.MemberID)
	}

	req := model.SwapRequest{
		Counterpart: model.Counterpart{
			Name:     member.Name,
			Photo:    member.Photo,
			Location: member.Location,
			Rating:   member.Rating,
		},
		SkillOffered: draft.SkillOffered,
		SkillWanted:  draft.SkillWanted,
		Message:      draft.Message,
		Timestamp:    "just now",
		Status:       model.SwapPending,
	}
	s.logger.InfoContext(ctx, "swap request proposed", slog.String("memberID", member.ID))

	return &RequestOutcome{
		Request: req,
		Notice: model.Notice{
			Title:       "Request Sent!",
			Description: fmt.Sprintf("Your swap request has been sent to %s.", member.Name),
		},
	}, nil
}
