package model

// Member is a community profile shown on the Browse page.
type Member struct {
	ID                string   `json:"id"                yaml:"id"`
	Name              string   `json:"name"              yaml:"name"`
	Location          string   `json:"location"          yaml:"location"`
	Photo             string   `json:"photo"             yaml:"photo"`
	Rating            float64  `json:"rating"            yaml:"rating"`
	SkillsOffered     []string `json:"skillsOffered"     yaml:"skillsOffered"`
	SkillsWanted      []string `json:"skillsWanted"      yaml:"skillsWanted"`
	Availability      bool     `json:"availability"      yaml:"availability"`
	ResponseTime      string   `json:"responseTime"      yaml:"responseTime"`
	CompletedSessions int      `json:"completedSessions" yaml:"completedSessions"`
	Bio               string   `json:"bio"               yaml:"bio"`
}

// Counterpart is the other party shown on a swap request card.
type Counterpart struct {
	Name     string  `json:"name"     yaml:"name"`
	Photo    string  `json:"photo"    yaml:"photo"`
	Location string  `json:"location" yaml:"location"`
	Rating   float64 `json:"rating"   yaml:"rating"`
	Points   int     `json:"points"   yaml:"points"`
}
