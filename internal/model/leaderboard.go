package model

type LeaderboardEntry struct {
	ID            string   `json:"id"            yaml:"id"`
	Name          string   `json:"name"          yaml:"name"`
	Photo         string   `json:"photo"         yaml:"photo"`
	Points        int      `json:"points"        yaml:"points"`
	MonthlyPoints int      `json:"monthlyPoints" yaml:"monthlyPoints"`
	Level         string   `json:"level"         yaml:"level"`
	Badges        []string `json:"badges"        yaml:"badges"`
	SkillsShared  int      `json:"skillsShared"  yaml:"skillsShared"`
	Rating        float64  `json:"rating"        yaml:"rating"`
	Rank          int      `json:"rank"          yaml:"rank"`
}

type Badge struct {
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Rarity      string `json:"rarity"      yaml:"rarity"` // common, rare, epic, legendary
	Holders     int    `json:"holders"     yaml:"holders"`
}
