package render

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio/internal/veille"
)

func testCatalog() *veille.Catalog {
	return veille.NewCatalog([]veille.Topic{
		{
			Title:     "MFA",
			Subtitle:  "Authentification",
			Mechanism: "step one\n\n  step two ",
			Prerequisites: []veille.Prerequisite{
				{Title: "TOTP", Mechanism: "codes"},
				{Title: "Prerequis 2"},
			},
			Articles: []veille.Article{
				{Title: "one", Description: "first", Tags: []string{"auth"}, Link: "https://one"},
				{Title: "two", Description: "second", Tags: []string{"auth", "mfa", "auth"}, Image: "/img/two.png"},
				{Title: "three", Description: "third"},
			},
		},
		{
			Title: "Zero Trust",
			Articles: []veille.Article{
				{Title: "four", Description: "fourth", Tags: []string{"auth", "cloud"}},
				{Title: "", Description: "x", Tags: []string{"cloud"}},
			},
		},
	})
}

func cardTitles(sec Section) []string {
	var out []string
	for _, c := range sec.Cards {
		out = append(out, c.Title)
	}
	return out
}

func activeButtons(sec Section) []string {
	var out []string
	for _, b := range sec.Toolbar {
		if b.Active {
			out = append(out, b.Tag)
		}
	}
	return out
}

func TestPathLinks(t *testing.T) {
	l := PathLinks{}
	assert.Equal(t, "/veille", l.Index())
	assert.Equal(t, "/veille/mfa", l.Topic("mfa"))
	assert.Equal(t, "/veille/mfa", l.Tag("mfa", ""))
	assert.Equal(t, "/veille/mfa", l.Tag("mfa", veille.AllTags))
	assert.Equal(t, "/veille/mfa/tag/Vuln%C3%A9rabilit%C3%A9", l.Tag("mfa", "Vulnérabilité"))
	assert.Equal(t, "/veille/mfa/tag/a%2Fb", l.Tag("mfa", "a/b"))
	assert.Equal(t, "/site/veille/mfa", PathLinks{Prefix: "/site/veille/"}.Topic("mfa"))
}

func TestBuildPage_MFAScenario(t *testing.T) {
	c := testCatalog()
	s := veille.Initial()

	page := BuildPage(c, s, PathLinks{})
	assert.Equal(t, []string{"one", "two", "three"}, cardTitles(page.Section))

	page = BuildPage(c, s.SelectTag("auth"), PathLinks{})
	assert.Equal(t, []string{"one", "two"}, cardTitles(page.Section))

	page = BuildPage(c, s.SelectTag("mfa"), PathLinks{})
	assert.Equal(t, []string{"two"}, cardTitles(page.Section))
	assert.Equal(t, 1, page.Section.Cards[0].Position)
}

func TestBuildPage_Nav(t *testing.T) {
	c := testCatalog()
	page := BuildPage(c, veille.Initial().SelectTopic(c, 1), PathLinks{})

	require.Len(t, page.Nav, 2)
	assert.False(t, page.Nav[0].Active)
	assert.True(t, page.Nav[1].Active)
	assert.Equal(t, "/veille/zero-trust", page.Nav[1].Href)
	assert.Equal(t, "zero-trust", page.Section.ID)
}

func TestBuildPage_ExactlyOneActiveButton(t *testing.T) {
	c := testCatalog()
	topic := c.Topic(0)
	for _, tag := range append([]string{""}, veille.Vocabulary(topic)...) {
		page := BuildPage(c, veille.Initial().SelectTag(tag), PathLinks{})
		active := activeButtons(page.Section)
		require.Len(t, active, 1, "tag %q", tag)
		if tag == "" {
			assert.Equal(t, veille.AllTags, active[0])
		} else {
			assert.Equal(t, tag, active[0])
		}
	}
}

func TestBuildPage_Toolbar(t *testing.T) {
	c := testCatalog()
	page := BuildPage(c, veille.Initial().SelectTag("auth"), PathLinks{})
	bar := page.Section.Toolbar

	require.Len(t, bar, 3)
	assert.Equal(t, TagButton{Label: AllLabel, Tag: veille.AllTags, Href: "/veille/mfa", Count: 3}, bar[0])
	assert.Equal(t, TagButton{Label: "auth", Tag: "auth", Href: "/veille/mfa", Count: 2, Active: true}, bar[1])
	assert.Equal(t, TagButton{Label: "mfa", Tag: "mfa", Href: "/veille/mfa/tag/mfa", Count: 1}, bar[2])
}

func TestBuildPage_BadgesMatchToolbar(t *testing.T) {
	c := testCatalog()
	for _, tag := range []string{"", "auth", "mfa"} {
		page := BuildPage(c, veille.Initial().SelectTag(tag), PathLinks{})
		toolbar := map[string]string{}
		for _, b := range page.Section.Toolbar {
			toolbar[b.Tag] = b.Href
		}
		for _, card := range page.Section.Cards {
			for _, badge := range card.Badges {
				assert.Equal(t, toolbar[badge.Tag], badge.Href, "badge %q under %q", badge.Tag, tag)
			}
		}
	}
}

func TestBuildPage_CardDetails(t *testing.T) {
	c := testCatalog()
	sec := BuildPage(c, veille.Initial(), PathLinks{}).Section

	assert.Equal(t, []string{"step one", "step two"}, sec.Mechanism)
	require.Len(t, sec.Notes, 1, "placeholder prerequisite is hidden")
	assert.Equal(t, "TOTP", sec.Notes[0].Title)

	one, two, three := sec.Cards[0], sec.Cards[1], sec.Cards[2]
	assert.Equal(t, PlaceholderImage, one.Image)
	assert.True(t, one.Placeholder)
	assert.Equal(t, "https://one", one.Link)
	assert.Equal(t, "/img/two.png", two.Image)
	assert.False(t, two.Placeholder)
	assert.Empty(t, two.Link)
	assert.Len(t, two.Badges, 2, "duplicate tags produce one badge")
	assert.Empty(t, three.Badges)
}

func TestBuildPage_EmptySection(t *testing.T) {
	c := veille.NewCatalog([]veille.Topic{{Title: "Empty", Articles: []veille.Article{{Title: "", Description: "x"}}}})
	sec := BuildPage(c, veille.Initial(), PathLinks{}).Section
	assert.True(t, sec.Empty())
	assert.Equal(t, 0, sec.Toolbar[0].Count)
}

func TestFilters_With(t *testing.T) {
	f := Filters{"mfa": "auth"}
	g := f.With("zero-trust", "cloud")

	assert.Equal(t, Filters{"mfa": "auth"}, f, "original untouched")
	assert.Equal(t, Filters{"mfa": "auth", "zero-trust": "cloud"}, g)
	assert.Equal(t, Filters{"zero-trust": "cloud"}, g.With("mfa", ""))
	assert.Equal(t, Filters{"x": "y"}, Filters(nil).With("x", "y"))
}

func TestFilters_Normalize(t *testing.T) {
	c := testCatalog()
	f := Filters{"mfa": "auth", "zero-trust": "nope", "ghost": "auth"}
	assert.Equal(t, Filters{"mfa": "auth"}, f.Normalize(c))
}

func TestSectionsHref(t *testing.T) {
	href := SectionsHref("/veille/sections", Filters{"mfa": "auth", "zero-trust": "cloud"}, "mfa")

	u, err := url.Parse(href)
	require.NoError(t, err)
	assert.Equal(t, "/veille/sections", u.Path)
	assert.Equal(t, "mfa", u.Fragment)
	assert.Equal(t, "auth", u.Query().Get("tag[mfa]"))
	assert.Equal(t, "cloud", u.Query().Get("tag[zero-trust]"))

	assert.Equal(t, "/veille/sections", SectionsHref("/veille/sections", nil, ""))
}

func TestBuildSections_Isolation(t *testing.T) {
	c := testCatalog()
	sections := BuildSections(c, Filters{"mfa": "mfa"}, "/veille/sections")
	require.Len(t, sections, 2)

	assert.Equal(t, []string{"two"}, cardTitles(sections[0]))
	assert.Equal(t, []string{"four"}, cardTitles(sections[1]), "other section unfiltered")
	assert.Equal(t, []string{"mfa"}, activeButtons(sections[0]))
	assert.Equal(t, []string{veille.AllTags}, activeButtons(sections[1]))
}

func TestBuildSections_LinksPreserveOtherFilters(t *testing.T) {
	c := testCatalog()
	sections := BuildSections(c, Filters{"mfa": "auth"}, "/veille/sections")

	var cloud TagButton
	for _, b := range sections[1].Toolbar {
		if b.Tag == "cloud" {
			cloud = b
		}
	}
	u, err := url.Parse(cloud.Href)
	require.NoError(t, err)
	assert.Equal(t, "auth", u.Query().Get("tag[mfa]"))
	assert.Equal(t, "cloud", u.Query().Get("tag[zero-trust]"))
	assert.Equal(t, "zero-trust", u.Fragment)

	// the active "auth" button toggles only its own section off
	toggle, err := url.Parse(sections[0].Toolbar[1].Href)
	require.NoError(t, err)
	assert.Empty(t, toggle.Query().Get("tag[mfa]"))
}

func TestBuildSections_IgnoresUnknownFilter(t *testing.T) {
	c := testCatalog()
	sections := BuildSections(c, Filters{"mfa": "ghost"}, "/veille/sections")
	assert.Equal(t, []string{"one", "two", "three"}, cardTitles(sections[0]))
	assert.Equal(t, []string{veille.AllTags}, activeButtons(sections[0]))
}
