// Package wrapped builds the year-in-review summary shown in the Wrapped
// view.
package wrapped

import (
	"fmt"

	"github.com/alexjean/devify/internal/catalog"
)

const topExperiences = 3

// Slide is one step of the Wrapped story.
type Slide struct {
	Kicker   string
	Headline string
	Detail   string
}

// Summary aggregates catalog content and play counts.
type Summary struct {
	TopProject     *catalog.Project
	TopPlays       int64
	TotalPlays     int64
	TotalMinutes   int
	TopTech        string
	ProjectCount   int
	TopExperiences []*catalog.Experience
	Slides         []Slide
}

// Build summarizes cat using plays per project id. Ids in plays that are
// not in the catalog are ignored. Ties go to catalog order.
func Build(cat *catalog.Catalog, plays map[string]int64) Summary {
	projects := cat.Projects()
	s := Summary{ProjectCount: len(projects)}

	var seconds int64
	techWeight := make(map[string]int64)
	var techOrder []string
	for _, p := range projects {
		n := plays[p.ID]
		if n < 0 {
			n = 0
		}
		s.TotalPlays += n
		seconds += n * int64(p.DurationSeconds())
		if s.TopProject == nil || n > s.TopPlays {
			s.TopProject = p
			s.TopPlays = n
		}
		for _, tag := range p.Tech {
			if _, seen := techWeight[tag]; !seen {
				techOrder = append(techOrder, tag)
			}
			techWeight[tag] += 1 + n
		}
	}
	s.TotalMinutes = int(seconds / 60)

	var best int64
	for _, tag := range techOrder {
		if techWeight[tag] > best {
			best = techWeight[tag]
			s.TopTech = tag
		}
	}

	exps := cat.Experiences()
	if len(exps) > topExperiences {
		exps = exps[:topExperiences]
	}
	s.TopExperiences = exps

	s.Slides = slides(cat.Developer(), s)
	return s
}

func slides(dev catalog.Developer, s Summary) []Slide {
	out := []Slide{{
		Kicker:   "Your year with",
		Headline: dev.Name,
		Detail:   dev.Role,
	}}
	if s.TopProject != nil {
		out = append(out, Slide{
			Kicker:   "Top track",
			Headline: s.TopProject.Title,
			Detail:   fmt.Sprintf("%d plays", s.TopPlays),
		})
	}
	out = append(out,
		Slide{
			Kicker:   "Minutes listened",
			Headline: fmt.Sprintf("%d", s.TotalMinutes),
			Detail:   fmt.Sprintf("across %d plays", s.TotalPlays),
		},
		Slide{
			Kicker:   "Top genre",
			Headline: s.TopTech,
			Detail:   fmt.Sprintf("%d tracks released", s.ProjectCount),
		},
	)
	for i, e := range s.TopExperiences {
		out = append(out, Slide{
			Kicker:   fmt.Sprintf("Top collaboration #%d", i+1),
			Headline: e.Company,
			Detail:   e.Role,
		})
	}
	return out
}
