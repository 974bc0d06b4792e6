package service

import (
	"slices"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/catalog"
	"github.com/sakif/skillsync/internal/listfilter"
	"github.com/sakif/skillsync/internal/model"
)

// HighRatedMember is the lowest rating the "high-rated" browse filter keeps.
const HighRatedMember = 4.8

// MemberQuery is the Browse page's search form. Empty or "all" selectors
// are inactive.
type MemberQuery struct {
	Text     string
	Skill    string
	Location string
	Filter   string // all, available, high-rated
}

var (
	memberName     = func(m model.Member) string { return m.Name }
	memberLocation = func(m model.Member) string { return m.Location }
	memberOffered  = func(m model.Member) []string { return m.SkillsOffered }
	memberWanted   = func(m model.Member) []string { return m.SkillsWanted }
	memberRating   = func(m model.Member) float64 { return m.Rating }
)

var memberPresets = map[string]listfilter.Predicate[model.Member]{
	"available":  func(m model.Member) bool { return m.Availability },
	"high-rated": listfilter.AtLeast(HighRatedMember, memberRating),
}

// DirectoryService answers Browse page queries.
type DirectoryService struct {
	catalog *catalog.Catalog
}

func NewDirectoryService(c *catalog.Catalog) *DirectoryService {
	return &DirectoryService{catalog: c}
}

// Browse returns the members matching every active part of q, in catalog order.
func (s *DirectoryService) Browse(q MemberQuery) ([]model.Member, error) {
	preset, ok := listfilter.Choice(q.Filter, memberPresets)
	if !ok {
		return nil, apperror.ValidationFailed("filter", "Unknown filter "+q.Filter)
	}

	return listfilter.Filter(s.catalog.Members,
		listfilter.Text(q.Text,
			listfilter.Str(memberName),
			listfilter.Strs(memberOffered),
			listfilter.Strs(memberWanted),
		),
		listfilter.Contains(q.Skill, memberOffered, memberWanted),
		listfilter.Equals(q.Location, memberLocation),
		preset,
	), nil
}

func (s *DirectoryService) Skills() []string {
	return slices.Clone(s.catalog.Skills)
}

func (s *DirectoryService) Locations() []string {
	return slices.Clone(s.catalog.Locations)
}

// SuggestedMatches lists members who offer something u wants to learn.
func (s *DirectoryService) SuggestedMatches(u *model.User) []model.Member {
	var wanted []listfilter.Predicate[model.Member]
	if u != nil {
		for _, skill := range u.SkillsWanted {
			if p := listfilter.Contains(skill, memberOffered); p != nil {
				wanted = append(wanted, p)
			}
		}
	}
	// Or with nothing active would keep everyone.
	if len(wanted) == 0 {
		return []model.Member{}
	}
	return listfilter.Filter(s.catalog.Members, listfilter.Or(wanted...))
}
