package model

// Party is a name plus avatar, used on both sides of a review.
type Party struct {
	Name  string `json:"name"  yaml:"name"`
	Photo string `json:"photo" yaml:"photo"`
}

// Feedback is a published review of a completed session.
type Feedback struct {
	ID       string `json:"id"       yaml:"id"`
	Reviewer Party  `json:"reviewer" yaml:"reviewer"`
	Reviewee Party  `json:"reviewee" yaml:"reviewee"`
	Rating   int    `json:"rating"   yaml:"rating"`
	Skill    string `json:"skill"    yaml:"skill"`
	Session  string `json:"session"  yaml:"session"`
	Comment  string `json:"comment"  yaml:"comment"`
	Date     string `json:"date"     yaml:"date"` // YYYY-MM-DD
	Helpful  int    `json:"helpful"  yaml:"helpful"`
}

// RecentSession is a session the user can still review.
type RecentSession struct {
	ID      string `json:"id"      yaml:"id"`
	Skill   string `json:"skill"   yaml:"skill"`
	Partner string `json:"partner" yaml:"partner"`
	Date    string `json:"date"    yaml:"date"`
}

// Review is a feedback submission. It is validated and then discarded.
type Review struct {
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	SkillSession string `json:"skillSession"`
}

// FeedbackStats summarises the published reviews.
type FeedbackStats struct {
	Total        int         `json:"total"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"` // stars -> count
	TotalHelpful int         `json:"totalHelpful"`
}
