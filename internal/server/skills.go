package server

import (
	"strings"

	"github.com/alexjean/devify/internal/catalog"
)

type skillStyle struct {
	Icon  string
	Color string
}

// skillStyles decorates genre cards by skill name. Unknown skills get
// defaultSkillStyle.
var skillStyles = map[string]skillStyle{
	"frontend":     {Icon: "globe", Color: "#8d67ab"},
	"react":        {Icon: "code", Color: "#e8115b"},
	"backend":      {Icon: "terminal", Color: "#1e3264"},
	"cloud":        {Icon: "cloud", Color: "#006450"},
	"database":     {Icon: "database", Color: "#e1118c"},
	"architecture": {Icon: "layers", Color: "#503750"},
	"mobile":       {Icon: "smartphone", Color: "#af2896"},
	"ai & ml":      {Icon: "cpu", Color: "#1DB954"},
}

var defaultSkillStyle = skillStyle{Icon: "music", Color: "#535353"}

type skillCard struct {
	Name     string
	Category string
	Icon     string
	Color    string
}

func styleFor(name string) skillStyle {
	if s, ok := skillStyles[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s
	}
	return defaultSkillStyle
}

func skillCards(skills []catalog.Skill) []skillCard {
	cards := make([]skillCard, 0, len(skills))
	for _, s := range skills {
		style := styleFor(s.Name)
		cards = append(cards, skillCard{Name: s.Name, Category: s.Category, Icon: style.Icon, Color: style.Color})
	}
	return cards
}
