package veille

import (
	"fmt"
	"strings"
)

// Catalog is the immutable, loaded topic list. It is safe for concurrent
// readers; nothing mutates it after NewCatalog returns.
type Catalog struct {
	topics []Topic
	slugs  []string
	index  map[string]int
}

// NewCatalog copies topics and assigns each a unique slug.
func NewCatalog(topics []Topic) *Catalog {
	c := &Catalog{
		topics: make([]Topic, len(topics)),
		slugs:  make([]string, len(topics)),
		index:  make(map[string]int, len(topics)),
	}
	for i, t := range topics {
		c.topics[i] = cloneTopic(t)

		slug := Slugify(t.Title)
		if slug == "" {
			slug = fmt.Sprintf("section-%d", i+1)
		}
		base := slug
		for n := 2; ; n++ {
			if _, taken := c.index[slug]; !taken {
				break
			}
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		c.slugs[i] = slug
		c.index[slug] = i
	}
	return c
}

// Len returns the number of topics.
func (c *Catalog) Len() int { return len(c.topics) }

// Topic returns the topic at i. It panics when i is out of range.
func (c *Catalog) Topic(i int) Topic { return c.topics[i] }

// Slug returns the identifier of the topic at i.
func (c *Catalog) Slug(i int) string { return c.slugs[i] }

// Topics returns the topics in load order. Callers must not modify them.
func (c *Catalog) Topics() []Topic { return c.topics }

// Lookup resolves a slug to a topic index.
func (c *Catalog) Lookup(slug string) (int, bool) {
	i, ok := c.index[slug]
	return i, ok
}

// Slugify lowercases s, collapses every run of characters outside [a-z0-9]
// into a single '-' and trims separators from both ends.
func Slugify(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

func cloneTopic(t Topic) Topic {
	out := t
	out.Prerequisites = append([]Prerequisite(nil), t.Prerequisites...)
	out.Articles = make([]Article, len(t.Articles))
	for i, a := range t.Articles {
		a.Tags = append([]string(nil), a.Tags...)
		out.Articles[i] = a
	}
	return out
}
