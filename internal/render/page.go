package render

import (
	"net/url"
	"strings"

	"github.com/devfolio/portfolio/internal/veille"
)

// Links maps veille states onto locations.
type Links interface {
	Index() string
	Topic(slug string) string
	Tag(slug, tag string) string
}

// PathLinks is the path based scheme shared by the server and the static
// export: /veille/{slug} and /veille/{slug}/tag/{tag}.
type PathLinks struct {
	Prefix string
}

func (l PathLinks) Index() string { return l.prefix() }

func (l PathLinks) Topic(slug string) string {
	return l.prefix() + "/" + url.PathEscape(slug)
}

// Tag falls back to Topic for the empty tag.
func (l PathLinks) Tag(slug, tag string) string {
	if tag == "" || tag == veille.AllTags {
		return l.Topic(slug)
	}
	return l.Topic(slug) + "/tag/" + url.PathEscape(tag)
}

func (l PathLinks) prefix() string {
	if l.Prefix == "" {
		return "/veille"
	}
	return strings.TrimRight(l.Prefix, "/")
}

type NavItem struct {
	Title    string
	Subtitle string
	Slug     string
	Href     string
	Active   bool
}

// Page is the single-topic view: navigation across every topic plus the
// active topic's section.
type Page struct {
	Nav     []NavItem
	Section Section
	State   veille.State
}

// BuildPage projects s onto a Page. s must reference a topic of c.
func BuildPage(c *veille.Catalog, s veille.State, links Links) Page {
	page := Page{State: s}
	for i, t := range c.Topics() {
		page.Nav = append(page.Nav, NavItem{
			Title:    t.Title,
			Subtitle: t.Subtitle,
			Slug:     c.Slug(i),
			Href:     links.Topic(c.Slug(i)),
			Active:   i == s.Topic,
		})
	}
	slug := c.Slug(s.Topic)
	page.Section = buildSection(c.Topic(s.Topic), slug, s, func(tag string) string {
		return links.Tag(slug, tag)
	})
	return page
}
