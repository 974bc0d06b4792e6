package model

type Activity struct {
	ID          string `json:"id"               yaml:"id"`
	Type        string `json:"type"             yaml:"type"` // swap, request, achievement, feedback
	Description string `json:"description"      yaml:"description"`
	Time        string `json:"time"             yaml:"time"`
	Points      int    `json:"points,omitempty" yaml:"points"`
	Action      string `json:"action,omitempty" yaml:"action"`
	Badge       string `json:"badge,omitempty"  yaml:"badge"`
	Rating      int    `json:"rating,omitempty" yaml:"rating"`
}

type UpcomingSession struct {
	ID      string `json:"id"      yaml:"id"`
	Skill   string `json:"skill"   yaml:"skill"`
	Partner string `json:"partner" yaml:"partner"`
	Date    string `json:"date"    yaml:"date"`
	Type    string `json:"type"    yaml:"type"` // teaching, learning
	Avatar  string `json:"avatar"  yaml:"avatar"`
}

type SkillProgress struct {
	Skill    string `json:"skill"    yaml:"skill"`
	Level    int    `json:"level"    yaml:"level"` // percent
	Sessions int    `json:"sessions" yaml:"sessions"`
}

// Dashboard is the signed-in landing view.
type Dashboard struct {
	User             *User             `json:"user"`
	Stats            []StatCard        `json:"stats"`
	RecentActivity   []Activity        `json:"recentActivity"`
	UpcomingSessions []UpcomingSession `json:"upcomingSessions"`
	SkillProgress    []SkillProgress   `json:"skillProgress"`
	SuggestedMatches []Member          `json:"suggestedMatches"`
}

// Notice is an ephemeral toast shown after an action.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant,omitempty"` // "" or "destructive"
}
