package handler

import (
	"net/http"
	"time"

	"github.com/sakif/skillsync/internal/apperror"
)

// ThemeCookie holds the colour scheme. It is separate from the session:
// signing out keeps the theme, and the theme never touches the session record.
const ThemeCookie = "skillsync-theme"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeFrom reads the theme cookie; anything unrecognised is light.
func ThemeFrom(r *http.Request) string {
	c, err := r.Cookie(ThemeCookie)
	if err != nil || c.Value != ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type themeBody struct {
	Theme string `json:"theme"`
}

// HandleGetTheme reports the current theme.
//
// HTTP: GET /api/theme
func HandleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeBody{Theme: ThemeFrom(r)})
}

// HandleSetTheme stores the theme for a year.
//
// HTTP: PUT /api/theme
// REQUEST BODY: {"theme": "dark"}
func HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Theme != ThemeLight && body.Theme != ThemeDark {
		writeError(w, apperror.ValidationFailed("theme", "Theme must be light or dark"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    body.Theme,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, body)
}
