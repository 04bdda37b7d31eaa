// Package render projects veille state onto view models. Every function
// here is pure: the same catalog and state always give the same view, so
// templates never need to inspect or mutate state themselves.
package render

import (
	"strings"

	"github.com/devfolio/portfolio/internal/veille"
)

// PlaceholderImage stands in for articles without an image.
const PlaceholderImage = "/static/img/article-standin.svg"

// AllLabel is the caption of the toolbar button clearing the filter.
const AllLabel = "Tous"

type Section struct {
	ID         string
	Title      string
	Subtitle   string
	Definition string
	Mechanism  []string
	Notes      []Note
	Toolbar    []TagButton
	Cards      []Card
	ActiveTag  string
}

// Empty reports whether the current filter leaves nothing to show.
func (s Section) Empty() bool { return len(s.Cards) == 0 }

type Note struct {
	Title       string
	Mechanism   []string
	Protocol    string
	Environment string
	Link        string
}

type TagButton struct {
	Label  string
	Tag    string
	Href   string
	Count  int
	Active bool
}

type Card struct {
	Position    int
	Title       string
	Description string
	Source      string
	Date        string
	Image       string
	Placeholder bool
	Link        string
	Badges      []Badge
}

// Tags lists the card's badge tags in order.
func (c Card) Tags() []string {
	tags := make([]string, 0, len(c.Badges))
	for _, b := range c.Badges {
		tags = append(tags, b.Tag)
	}
	return tags
}

type Badge struct {
	Tag    string
	Href   string
	Active bool
}

// hrefFunc returns the location showing the section filtered by tag,
// where the empty tag means no filter.
type hrefFunc func(tag string) string

// buildSection renders one topic under state. Toolbar buttons and article
// badges share target(), so clicking a badge is the same operation as
// clicking the toolbar button with the same tag.
func buildSection(topic veille.Topic, slug string, state veille.State, href hrefFunc) Section {
	target := func(tag string) string {
		return href(state.SelectTag(tag).Tag)
	}

	sec := Section{
		ID:         slug,
		Title:      topic.Title,
		Subtitle:   topic.Subtitle,
		Definition: topic.Definition,
		Mechanism:  lines(topic.Mechanism),
		ActiveTag:  state.Tag,
	}

	for _, p := range topic.Prerequisites {
		if p.Placeholder() {
			continue
		}
		sec.Notes = append(sec.Notes, Note{
			Title:       p.Title,
			Mechanism:   lines(p.Mechanism),
			Protocol:    p.Protocol,
			Environment: p.Environment,
			Link:        p.Link,
		})
	}

	sec.Toolbar = append(sec.Toolbar, TagButton{
		Label:  AllLabel,
		Tag:    veille.AllTags,
		Href:   href(""),
		Count:  veille.Count(topic, ""),
		Active: !state.Filtered(),
	})
	for _, tag := range veille.Vocabulary(topic) {
		sec.Toolbar = append(sec.Toolbar, TagButton{
			Label:  tag,
			Tag:    tag,
			Href:   target(tag),
			Count:  veille.Count(topic, tag),
			Active: state.Tag == tag,
		})
	}

	for i, a := range topic.Articles {
		if !veille.Matches(a, state.Tag) {
			continue
		}
		card := Card{
			Position:    i,
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source,
			Date:        a.Date,
			Image:       a.Image,
			Link:        strings.TrimSpace(a.Link),
		}
		if card.Image == "" {
			card.Image = PlaceholderImage
			card.Placeholder = true
		}
		seen := make(map[string]bool, len(a.Tags))
		for _, tag := range a.Tags {
			if tag == "" || tag == veille.AllTags || seen[tag] {
				continue
			}
			seen[tag] = true
			card.Badges = append(card.Badges, Badge{
				Tag:    tag,
				Href:   target(tag),
				Active: state.Tag == tag,
			})
		}
		sec.Cards = append(sec.Cards, card)
	}
	return sec
}

func lines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
