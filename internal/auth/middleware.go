package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/sakif/skillsync/internal/model"
	"github.com/sakif/skillsync/internal/session"
)

// contextKey is unexported so no other package can read or shadow our values.
type contextKey string

const storeKey contextKey = "sessionStore"

// CookieName is the session cookie.
const CookieName = "skillsync_session"

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	Secure bool
}

// Sessions opens the Store for the request's session and places it in the
// context. A missing, expired or forged cookie starts a fresh session key and
// a new cookie is issued.
func Sessions(tokens *TokenService, sessions *session.Manager, opts CookieOptions, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := sessionKey(r, tokens)
			if err != nil {
				key = uuid.NewString()
				if err := issueCookie(w, tokens, key, opts); err != nil {
					logger.Error("issuing session cookie", slog.String("error", err.Error()))
					http.Error(w, `{"error":"internal_error","message":"An internal error occurred"}`, http.StatusInternalServerError)
					return
				}
			}

			store := sessions.Open(r.Context(), key)
			ctx := context.WithValue(r.Context(), storeKey, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StoreFromContext returns the Store placed by Sessions.
func StoreFromContext(ctx context.Context) (*session.Store, bool) {
	s, ok := ctx.Value(storeKey).(*session.Store)
	return s, ok && s != nil
}

// WithStore returns a copy of ctx carrying s. Handler tests use it to skip
// the cookie round trip.
func WithStore(ctx context.Context, s *session.Store) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// CurrentUser returns a copy of the signed-in user, or nil.
func CurrentUser(ctx context.Context) *model.User {
	s, ok := StoreFromContext(ctx)
	if !ok {
		return nil
	}
	return s.User()
}

// RequireUser answers 401 unless someone is signed in.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			writeDenied(w, http.StatusUnauthorized, "unauthorized", "Please sign in to continue")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin answers 403 unless the signed-in user is an administrator.
// A signed-out caller also gets 403: the admin surface never hints at login.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(CurrentUser(r.Context())) {
			writeDenied(w, http.StatusForbidden, "forbidden", "You don't have permission to access this page.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeDenied(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": kind, "message": message})
}

func sessionKey(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", err
	}
	return tokens.Validate(cookie.Value)
}

func issueCookie(w http.ResponseWriter, tokens *TokenService, key string, opts CookieOptions) error {
	token, err := tokens.Generate(key)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
