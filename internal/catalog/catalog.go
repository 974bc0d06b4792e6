// Package catalog holds the read-only community data: members, reviews,
// swap requests, rankings and the admin console tables.
//
// The data ships inside the binary as YAML and is decoded once at startup.
// A Catalog is never mutated after Parse returns, so it is safe to share
// between requests as long as callers copy before modifying.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sakif/skillsync/internal/model"
)

//go:embed data/catalog.yaml
var defaultData []byte

// DateLayout is the layout of every calendar date in the catalog.
const DateLayout = "2006-01-02"

type Catalog struct {
	Members   []model.Member `yaml:"members"`
	Skills    []string       `yaml:"skills"`
	Locations []string       `yaml:"locations"`

	Feedback struct {
		RecentAfter    string                `yaml:"recentAfter"`
		Reviews        []model.Feedback      `yaml:"reviews"`
		RecentSessions []model.RecentSession `yaml:"recentSessions"`
	} `yaml:"feedback"`

	Requests struct {
		Incoming []model.SwapRequest `yaml:"incoming"`
		Outgoing []model.SwapRequest `yaml:"outgoing"`
		Accepted []model.SwapRequest `yaml:"accepted"`
	} `yaml:"requests"`

	Leaderboard struct {
		Entries []model.LeaderboardEntry `yaml:"entries"`
		Badges  []model.Badge            `yaml:"badges"`
	} `yaml:"leaderboard"`

	Dashboard struct {
		Stats        []model.StatCard        `yaml:"stats"`
		PointsChange string                  `yaml:"pointsChange"`
		RatingChange string                  `yaml:"ratingChange"`
		Activity     []model.Activity        `yaml:"activity"`
		Upcoming     []model.UpcomingSession `yaml:"upcoming"`
		Progress     []model.SkillProgress   `yaml:"progress"`
	} `yaml:"dashboard"`

	Admin struct {
		Stats   []model.StatCard   `yaml:"stats"`
		Users   []model.AdminUser  `yaml:"users"`
		Swaps   []model.AdminSwap  `yaml:"swaps"`
		Reports []model.Report     `yaml:"reports"`
		Spam    []model.SpamReport `yaml:"spam"`
	} `yaml:"admin"`

	recentAfter time.Time
}

// Load decodes the built-in catalog.
func Load() (*Catalog, error) {
	return Parse(defaultData)
}

// Parse decodes a catalog document and checks its cross-references.
func Parse(data []byte) (*Catalog, error) {
	c := new(Catalog)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("catalog: decoding: %w", err)
	}

	t, err := time.Parse(DateLayout, c.Feedback.RecentAfter)
	if err != nil {
		return nil, fmt.Errorf("catalog: feedback.recentAfter: %w", err)
	}
	c.recentAfter = t

	for _, fb := range c.Feedback.Reviews {
		if fb.Rating < 1 || fb.Rating > 5 {
			return nil, fmt.Errorf("catalog: review %s: rating %d out of range", fb.ID, fb.Rating)
		}
		if _, err := time.Parse(DateLayout, fb.Date); err != nil {
			return nil, fmt.Errorf("catalog: review %s: %w", fb.ID, err)
		}
	}

	seen := make(map[string]bool)
	for _, group := range [][]model.SwapRequest{c.Requests.Incoming, c.Requests.Outgoing, c.Requests.Accepted} {
		for _, req := range group {
			if seen[req.ID] {
				return nil, fmt.Errorf("catalog: duplicate swap request id %s", req.ID)
			}
			seen[req.ID] = true
		}
	}

	return c, nil
}

// RecentAfter is the day after which a review counts as recent.
func (c *Catalog) RecentAfter() time.Time {
	return c.recentAfter
}

// Member looks a member up by id.
func (c *Catalog) Member(id string) (model.Member, bool) {
	i := slices.IndexFunc(c.Members, func(m model.Member) bool { return m.ID == id })
	if i < 0 {
		return model.Member{}, false
	}
	return c.Members[i], true
}

// SwapRequest finds a request in any of the three request lists and reports
// which list held it.
func (c *Catalog) SwapRequest(id string) (model.SwapRequest, string, bool) {
	lists := []struct {
		name string
		reqs []model.SwapRequest
	}{
		{"incoming", c.Requests.Incoming},
		{"outgoing", c.Requests.Outgoing},
		{"accepted", c.Requests.Accepted},
	}
	for _, l := range lists {
		for _, r := range l.reqs {
			if r.ID == id {
				return r, l.name, true
			}
		}
	}
	return model.SwapRequest{}, "", false
}
