// Package catalog holds the static portfolio content: the developer, their
// projects ("tracks"), experiences ("albums"), skills and the assorted
// presentation-only records. A Catalog is built once and never mutated.
package catalog

import (
	"fmt"
	"strings"
)

// Contents is the raw material for a Catalog.
type Contents struct {
	Developer    Developer
	Projects     []Project
	Experiences  []Experience
	Skills       []Skill
	TourDates    []TourDate
	Merch        []MerchItem
	Hackathons   []Hackathon
	Achievements []GlobalAchievement
}

// Catalog is the immutable content store. Lookups hand out pointers into
// the catalog so every holder of a selected project sees the same record.
type Catalog struct {
	developer    Developer
	projects     []Project
	experiences  []Experience
	skills       []Skill
	tourDates    []TourDate
	merch        []MerchItem
	hackathons   []Hackathon
	achievements []GlobalAchievement

	projectIndex    map[string]int
	experienceIndex map[string]int
}

// New validates contents and builds a Catalog from a private copy of it.
func New(c Contents) (*Catalog, error) {
	cat := &Catalog{
		developer:       c.Developer,
		projects:        append([]Project(nil), c.Projects...),
		experiences:     append([]Experience(nil), c.Experiences...),
		skills:          append([]Skill(nil), c.Skills...),
		tourDates:       append([]TourDate(nil), c.TourDates...),
		merch:           append([]MerchItem(nil), c.Merch...),
		hackathons:      append([]Hackathon(nil), c.Hackathons...),
		achievements:    append([]GlobalAchievement(nil), c.Achievements...),
		projectIndex:    make(map[string]int, len(c.Projects)),
		experienceIndex: make(map[string]int, len(c.Experiences)),
	}

	for i, p := range cat.projects {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("project %q: %w", p.Title, ErrMissingID)
		}
		if _, dup := cat.projectIndex[p.ID]; dup {
			return nil, fmt.Errorf("project %q: %w", p.ID, ErrDuplicateID)
		}
		cat.projectIndex[p.ID] = i
	}
	for i, e := range cat.experiences {
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("experience %q: %w", e.Company, ErrMissingID)
		}
		if _, dup := cat.experienceIndex[e.ID]; dup {
			return nil, fmt.Errorf("experience %q: %w", e.ID, ErrDuplicateID)
		}
		cat.experienceIndex[e.ID] = i
	}
	seen := make(map[string]struct{}, len(cat.skills))
	for _, s := range cat.skills {
		key := strings.ToLower(s.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("skill %q: %w", s.Name, ErrDuplicateID)
		}
		seen[key] = struct{}{}
	}

	return cat, nil
}

// Default returns the built-in catalog. The sample data is validated by
// tests, so a failure here is a programming error.
func Default() *Catalog {
	cat, err := New(sampleContents())
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid built-in contents: %v", err))
	}
	return cat
}

func (c *Catalog) Developer() Developer { return c.developer }

// Projects returns every project in display order.
func (c *Catalog) Projects() []*Project {
	out := make([]*Project, len(c.projects))
	for i := range c.projects {
		out[i] = &c.projects[i]
	}
	return out
}

// Experiences returns every experience in display order.
func (c *Catalog) Experiences() []*Experience {
	out := make([]*Experience, len(c.experiences))
	for i := range c.experiences {
		out[i] = &c.experiences[i]
	}
	return out
}

// Project looks a project up by id.
func (c *Catalog) Project(id string) (*Project, bool) {
	i, ok := c.projectIndex[id]
	if !ok {
		return nil, false
	}
	return &c.projects[i], true
}

// Experience looks an experience up by id.
func (c *Catalog) Experience(id string) (*Experience, bool) {
	i, ok := c.experienceIndex[id]
	if !ok {
		return nil, false
	}
	return &c.experiences[i], true
}

// FirstProject is what the player bar shows before anything was played.
func (c *Catalog) FirstProject() *Project {
	if len(c.projects) == 0 {
		return nil
	}
	return &c.projects[0]
}

func (c *Catalog) Skills() []Skill { return append([]Skill(nil), c.skills...) }
func (c *Catalog) TourDates() []TourDate { return append([]TourDate(nil), c.tourDates...) }
func (c *Catalog) Merch() []MerchItem { return append([]MerchItem(nil), c.merch...) }
func (c *Catalog) Hackathons() []Hackathon { return append([]Hackathon(nil), c.hackathons...) }
func (c *Catalog) Achievements() []GlobalAchievement { return append([]GlobalAchievement(nil), c.achievements...) }
