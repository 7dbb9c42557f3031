package catalog

import (
	"strconv"
	"strings"
)

// Developer is the "artist" the whole page is about.
type Developer struct {
	Name             string `json:"name"`
	Role             string `json:"role"`
	Bio              string `json:"bio"`
	About            string `json:"about"`
	MonthlyListeners string `json:"monthlyListeners"`
	Verified         bool   `json:"verified"`
	ProfileImage     string `json:"profileImage"`
}

// Project is a portfolio entry, rendered as a track.
type Project struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription,omitempty"`
	Tech            []string `json:"tech"`
	Duration        string   `json:"duration"`
	ImageURL        string   `json:"imageUrl"`
	Stars           int      `json:"stars,omitempty"`
	Link            string   `json:"link,omitempty"`
	DemoURL         string   `json:"demoUrl,omitempty"`
	RepoURL         string   `json:"repoUrl,omitempty"`
	Color           string   `json:"color,omitempty"`
}

// DurationSeconds parses the display duration ("m:ss"). Anything that does
// not parse counts as zero.
func (p *Project) DurationSeconds() int {
	if p == nil {
		return 0
	}
	minutes, seconds, ok := strings.Cut(strings.TrimSpace(p.Duration), ":")
	if !ok {
		return 0
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 {
		return 0
	}
	s, err := strconv.Atoi(seconds)
	if err != nil || s < 0 || s > 59 {
		return 0
	}
	return m*60 + s
}

// Achievement is a highlight inside an Experience.
type Achievement struct {
	Title  string `json:"title"`
	Impact string `json:"impact"`
}

// Experience is a past or current role, rendered as an album the artist
// "appears on".
type Experience struct {
	ID           string        `json:"id"`
	Company      string        `json:"company"`
	Role         string        `json:"role"`
	Period       string        `json:"period"`
	Description  string        `json:"description"`
	ImageURL     string        `json:"imageUrl"`
	Achievements []Achievement `json:"achievements,omitempty"`
	Color        string        `json:"color,omitempty"`
}

// Skill is a genre card. Icons and colors are looked up by Name in the
// presentation layer.
type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type TourDate struct {
	Date     string `json:"date"`
	Event    string `json:"event"`
	Location string `json:"location"`
	Link     string `json:"link"`
}

type MerchItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ImageURL string `json:"imageUrl"`
	Price    string `json:"price"`
}

type Hackathon struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Result  string `json:"result"`
	Date    string `json:"date"`
	Project string `json:"project"`
}

// GlobalAchievement is a plaque on the achievement wall.
type GlobalAchievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description"`
}
