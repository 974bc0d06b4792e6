package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/skillsync/internal/model"
	"github.com/sakif/skillsync/internal/service"
)

// RequestHandler serves the Requests page actions. Every route is mounted
// behind auth.RequireUser.
type RequestHandler struct {
	requests *service.RequestService
}

func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// HTTP: GET /api/requests
func (h *RequestHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.requests.List())
}

// HandlePropose sends a swap request from the Browse page.
//
// HTTP: POST /api/requests
// REQUEST BODY: {"memberId": "2", "skillOffered": "Python", "skillWanted": "React", "message": "..."}
func (h *RequestHandler) HandlePropose(w http.ResponseWriter, r *http.Request) {
	var draft model.SwapDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.requests.Propose(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeNotice(w, out.Request, out.Notice)
}

// HTTP: POST /api/requests/{id}/accept
func (h *RequestHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.requests.Accept)
}

// HTTP: POST /api/requests/{id}/reject
func (h *RequestHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.requests.Reject)
}

// HandleCancel withdraws an outgoing request.
//
// HTTP: DELETE /api/requests/{id}
func (h *RequestHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.requests.Cancel)
}

func (h *RequestHandler) act(w http.ResponseWriter, r *http.Request, do func(context.Context, string) (*service.RequestOutcome, error)) {
	out, err := do(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeNotice(w, out.Request, out.Notice)
}
