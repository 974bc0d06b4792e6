package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/auth"
	"github.com/sakif/skillsync/internal/model"
	"github.com/sakif/skillsync/internal/service"
	"github.com/sakif/skillsync/internal/session"
)

// AccountHandler serves sign-in, sign-up, sign-out and profile edits.
//
// HANDLER RESPONSIBILITIES:
//   - HandleSession     → who is signed in right now
//   - HandleLogin       → resolve a demo profile and sign in
//   - HandleRegister    → build a new account and sign in
//   - HandleLogout      → clear the session record
//   - HandleAdminLogin  → sign in, but keep the session only for administrators
//   - HandleUpdateProfile / HandleUploadPhoto → edit the signed-in profile
//
// The session itself lives in the request context (see auth.Sessions); the
// cookie is never touched here, so signing out keeps the same session key.
type AccountHandler struct {
	accounts      *service.AccountService
	maxPhotoBytes int64
	logger        *slog.Logger
}

func NewAccountHandler(accounts *service.AccountService, maxPhotoBytes int64, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, maxPhotoBytes: maxPhotoBytes, logger: logger}
}

// SessionView is what the page chrome needs to know about the caller.
// IsAdmin is derived from the role on every response and never stored.
type SessionView struct {
	LoggedIn bool          `json:"loggedIn"`
	IsAdmin  bool          `json:"isAdmin"`
	User     *model.User   `json:"user"`
	Notice   *model.Notice `json:"notice,omitempty"`
}

func sessionView(u *model.User, notice *model.Notice) SessionView {
	return SessionView{LoggedIn: u != nil, IsAdmin: auth.IsAdmin(u), User: u, Notice: notice}
}

// storeFrom returns the caller's session. Every route sits behind
// auth.Sessions, so a missing store is a wiring bug and answers 500.
func storeFrom(r *http.Request) (*session.Store, error) {
	store, ok := auth.StoreFromContext(r.Context())
	if !ok {
		return nil, errors.New("handler: no session store in request context")
	}
	return store, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSession returns the current session.
//
// HTTP: GET /api/session
func (h *AccountHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	store, err := storeFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView(store.User(), nil))
}

// HandleLogin signs in with any email and password.
//
// HTTP: POST /api/auth/login
// REQUEST BODY: {"email": "me@example.com", "password": "anything"}
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.accounts.Login)
}

// HandleAdminLogin signs in and refuses anyone who is not an administrator.
// A refused caller ends up signed out, whatever session they had before.
//
// HTTP: POST /api/auth/admin/login
func (h *AccountHandler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.accounts.AdminLogin)
}

type loginFunc func(ctx context.Context, store service.SessionStore, email, password string) (*service.AuthResult, error)

func (h *AccountHandler) login(w http.ResponseWriter, r *http.Request, do loginFunc) {
	store, err := storeFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := do(r.Context(), store, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView(res.User, &res.Notice))
}

// HandleRegister creates an account from the sign-up form.
//
// HTTP: POST /api/auth/register
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	store, err := storeFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var reg model.Registration
	if err := decodeJSON(w, r, &reg); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.accounts.Register(r.Context(), store, reg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionView(res.User, &res.Notice))
}

// HandleLogout clears the session record.
//
// HTTP: POST /api/auth/logout
//
// WHY POST AND NOT GET?
// Logout changes state. A GET could be triggered by a prefetch or a
// cross-site image tag.
func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	store, err := storeFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.accounts.Logout(r.Context(), store); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView(nil, &model.Notice{Title: "Signed out"}))
}

// HandleUpdateProfile applies a partial profile update.
//
// HTTP: PATCH /api/profile
// REQUEST BODY: any subset of {"name","location","bio","skillsOffered","skillsWanted","availability","isPublic"}
func (h *AccountHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	store, err := storeFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch map[string]any
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.accounts.UpdateProfile(r.Context(), store, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView(res.User, &res.Notice))
}

// HandleUploadPhoto replaces the profile photo.
//
// HTTP: POST /api/profile/photo (multipart/form-data, field "photo")
//
// The body is capped a little above the photo limit to leave room for the
// multipart envelope; the service enforces the exact limit on the file.
func (h *AccountHandler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	store, err := storeFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxPhotoBytes+64<<10)
	file, _, err := r.FormFile("photo")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, apperror.ValidationFailed("photo", "Photo is too large"))
			return
		}
		writeError(w, apperror.ValidationFailed("photo", "Choose a photo to upload"))
		return
	}
	defer file.Close()

	res, err := h.accounts.UpdatePhoto(r.Context(), store, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView(res.User, &res.Notice))
}
