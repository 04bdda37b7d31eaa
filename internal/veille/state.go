package veille

import (
	"fmt"
	"slices"
)

// AllTags is the sentinel tag meaning "no filter".
const AllTags = "all"

// State is the whole browsing state of the veille page. The zero value is
// the initial state: first topic active, no tag filter.
type State struct {
	Topic int
	Tag   string
}

// Initial returns the state shown before any user input.
func Initial() State { return State{} }

// Filtered reports whether a tag filter is active.
func (s State) Filtered() bool { return s.Tag != "" }

// SelectTopic activates topic i and clears the tag filter. Offering an
// index outside the catalog is a caller bug and panics.
func (s State) SelectTopic(c *Catalog, i int) State {
	if i < 0 || i >= c.Len() {
		panic(fmt.Sprintf("veille: topic index %d out of range [0,%d)", i, c.Len()))
	}
	return State{Topic: i}
}

// SelectTag applies tag as the filter. The empty string and AllTags clear
// it, and selecting the tag that is already active toggles it off.
func (s State) SelectTag(tag string) State {
	if tag == AllTags || tag == s.Tag {
		tag = ""
	}
	return State{Topic: s.Topic, Tag: tag}
}

// Vocabulary is the sorted, de-duplicated union of every tag used by the
// topic's articles. The empty string and AllTags are reserved and never
// part of it.
func Vocabulary(t Topic) []string {
	var tags []string
	for _, a := range t.Articles {
		for _, tag := range a.Tags {
			if tag != "" && tag != AllTags {
				tags = append(tags, tag)
			}
		}
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// Matches is the single visibility predicate: the article is valid and,
// unless tag is empty or AllTags, carries tag.
func Matches(a Article, tag string) bool {
	if !a.Valid() {
		return false
	}
	return tag == "" || tag == AllTags || a.HasTag(tag)
}

// Filter returns the articles of t matching tag, in their original order.
func Filter(t Topic, tag string) []Article {
	out := make([]Article, 0, len(t.Articles))
	for _, a := range t.Articles {
		if Matches(a, tag) {
			out = append(out, a)
		}
	}
	return out
}

// Count is len(Filter(t, tag)) without the allocation.
func Count(t Topic, tag string) int {
	n := 0
	for _, a := range t.Articles {
		if Matches(a, tag) {
			n++
		}
	}
	return n
}

// Visible returns the articles shown for s.
func Visible(c *Catalog, s State) []Article {
	return Filter(c.Topic(s.Topic), s.Tag)
}
