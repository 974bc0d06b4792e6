package handler

import (
	"net/http"

	"github.com/sakif/skillsync/internal/service"
)

// DirectoryHandler answers the Browse page's member search.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// memberQuery reads the Browse form from the query string. Missing
// parameters stay empty and so inactive.
func memberQuery(r *http.Request) service.MemberQuery {
	q := r.URL.Query()
	return service.MemberQuery{
		Text:     q.Get("q"),
		Skill:    q.Get("skill"),
		Location: q.Get("location"),
		Filter:   q.Get("filter"),
	}
}

// HandleMembers returns the members matching the search.
//
// HTTP: GET /api/members?q=&skill=&location=&filter=all|available|high-rated
func (h *DirectoryHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.directory.Browse(memberQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// HTTP: GET /api/members/skills
func (h *DirectoryHandler) HandleSkills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.directory.Skills())
}

// HTTP: GET /api/members/locations
func (h *DirectoryHandler) HandleLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.directory.Locations())
}
