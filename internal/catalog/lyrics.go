package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LyricsLines splits a project's description into sentence "lines" for the
// lyrics view. Every line ends with a period.
func LyricsLines(p *Project) []string {
	if p == nil {
		return nil
	}
	var lines []string
	for _, part := range strings.Split(p.Description, ". ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasSuffix(part, ".") {
			part += "."
		}
		lines = append(lines, part)
	}
	return lines
}

// AssistantContext renders the system instruction handed to the text
// generation model: who the developer is plus the full project list.
func (c *Catalog) AssistantContext() string {
	projects, err := json.Marshal(c.projects)
	if err != nil {
		// Plain structs of strings and ints; Marshal cannot fail on them.
		projects = []byte("[]")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI assistant for %s's portfolio.\n", c.developer.Name)
	fmt.Fprintf(&b, "Developer Role: %s\n", c.developer.Role)
	fmt.Fprintf(&b, "Bio: %s\n", c.developer.Bio)
	fmt.Fprintf(&b, "Projects: %s\n", projects)
	b.WriteString("Answer questions about their experience and projects concisely like a Spotify recommendation.")
	return b.String()
}
