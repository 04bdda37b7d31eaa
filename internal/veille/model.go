// Package veille holds the technology-watch content model and the pure
// state transitions used to browse it: topic selection, tag filtering and
// the tag vocabulary of a topic.
package veille

import (
	"regexp"
	"slices"
	"strings"
)

// Topic is one technology-watch subject area.
type Topic struct {
	Title         string
	Subtitle      string
	Definition    string
	Mechanism     string
	Prerequisites []Prerequisite
	Articles      []Article
}

// Prerequisite is display-only data rendered as a free-standing note.
type Prerequisite struct {
	Title       string
	Mechanism   string
	Protocol    string
	Environment string
	Link        string
}

var placeholderTitle = regexp.MustCompile(`^Prerequis \d+$`)

// Placeholder reports whether the note still carries its authoring
// placeholder title and should not be shown.
func (p Prerequisite) Placeholder() bool {
	return placeholderTitle.MatchString(strings.TrimSpace(p.Title))
}

// Article is identified by its position inside its parent topic.
type Article struct {
	Title       string
	Description string
	Source      string
	Image       string
	Link        string
	Date        string
	Tags        []string
}

// Valid reports whether the article has both a title and a description.
// Articles failing this are incomplete entries and are never displayed
// or counted.
func (a Article) Valid() bool {
	return strings.TrimSpace(a.Title) != "" && strings.TrimSpace(a.Description) != ""
}

// HasTag is a case-sensitive exact membership test.
func (a Article) HasTag(tag string) bool {
	return slices.Contains(a.Tags, tag)
}
