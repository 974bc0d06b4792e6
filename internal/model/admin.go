package model

// StatCard is one tile of the admin overview.
type StatCard struct {
	Title  string `json:"title"  yaml:"title"`
	Value  string `json:"value"  yaml:"value"`
	Change string `json:"change" yaml:"change"`
}

// AdminUser is a row of the admin user table.
type AdminUser struct {
	ID         string  `json:"id"         yaml:"id"`
	Name       string  `json:"name"       yaml:"name"`
	Email      string  `json:"email"      yaml:"email"`
	JoinDate   string  `json:"joinDate"   yaml:"joinDate"`
	Status     string  `json:"status"     yaml:"status"` // active, pending, banned
	Swaps      int     `json:"swaps"      yaml:"swaps"`
	Rating     float64 `json:"rating"     yaml:"rating"`
	LastActive string  `json:"lastActive" yaml:"lastActive"`
	Photo      string  `json:"photo"      yaml:"photo"`
	Banned     bool    `json:"banned"     yaml:"banned"`
}

// AdminSwap is a row of the admin swap table.
type AdminSwap struct {
	ID           string     `json:"id"           yaml:"id"`
	Requester    string     `json:"requester"    yaml:"requester"`
	Responder    string     `json:"responder"    yaml:"responder"`
	SkillOffered string     `json:"skillOffered" yaml:"skillOffered"`
	SkillWanted  string     `json:"skillWanted"  yaml:"skillWanted"`
	Status       SwapStatus `json:"status"       yaml:"status"`
	Date         string     `json:"date"         yaml:"date"`
	Priority     string     `json:"priority"     yaml:"priority"`
}

// Report is a member-filed complaint awaiting moderation.
type Report struct {
	ID          string `json:"id"          yaml:"id"`
	Reporter    string `json:"reporter"    yaml:"reporter"`
	Reported    string `json:"reported"    yaml:"reported"`
	Type        string `json:"type"        yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Date        string `json:"date"        yaml:"date"`
	Status      string `json:"status"      yaml:"status"`
	Severity    string `json:"severity"    yaml:"severity"` // low, medium, high
}

// SpamReport flags a skill listing as spam.
type SpamReport struct {
	ID          string `json:"id"          yaml:"id"`
	User        string `json:"user"        yaml:"user"`
	Skill       string `json:"skill"       yaml:"skill"`
	Description string `json:"description" yaml:"description"`
	ReportedBy  string `json:"reportedBy"  yaml:"reportedBy"`
	Date        string `json:"date"        yaml:"date"`
	Status      string `json:"status"      yaml:"status"`
}
