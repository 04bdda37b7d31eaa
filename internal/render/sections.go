package render

import (
	"maps"
	"net/url"
	"slices"

	"github.com/devfolio/portfolio/internal/veille"
)

// Filters holds one tag filter per section, keyed by topic slug. A missing
// key means the section is unfiltered.
type Filters map[string]string

// With returns a copy of f where only slug's filter changed.
func (f Filters) With(slug, tag string) Filters {
	out := maps.Clone(f)
	if out == nil {
		out = Filters{}
	}
	if tag == "" || tag == veille.AllTags {
		delete(out, slug)
	} else {
		out[slug] = tag
	}
	return out
}

// Normalize drops entries naming an unknown topic or a tag outside the
// topic's vocabulary.
func (f Filters) Normalize(c *veille.Catalog) Filters {
	out := Filters{}
	for slug, tag := range f {
		i, ok := c.Lookup(slug)
		if !ok {
			continue
		}
		if slices.Contains(veille.Vocabulary(c.Topic(i)), tag) {
			out[slug] = tag
		}
	}
	return out
}

// Query encodes f as tag[slug]=value pairs in slug order.
func (f Filters) Query() url.Values {
	q := url.Values{}
	for _, slug := range slices.Sorted(maps.Keys(f)) {
		q.Set("tag["+slug+"]", f[slug])
	}
	return q
}

// SectionsHref builds the location of the all-sections page for f,
// anchored on the section that changed.
func SectionsHref(base string, f Filters, anchor string) string {
	u := base
	if q := f.Query().Encode(); q != "" {
		u += "?" + q
	}
	if anchor != "" {
		u += "#" + anchor
	}
	return u
}

// BuildSections renders every topic as its own section, each filtered
// independently by f. Links generated for one section carry the other
// sections' filters unchanged.
func BuildSections(c *veille.Catalog, f Filters, base string) []Section {
	f = f.Normalize(c)
	sections := make([]Section, 0, c.Len())
	for i, t := range c.Topics() {
		slug := c.Slug(i)
		state := veille.Initial().SelectTopic(c, i).SelectTag(f[slug])
		sections = append(sections, buildSection(t, slug, state, func(tag string) string {
			return SectionsHref(base, f.With(slug, tag), slug)
		}))
	}
	return sections
}
