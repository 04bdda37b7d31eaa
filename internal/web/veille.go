package web

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/portfolio/internal/render"
	"github.com/devfolio/portfolio/internal/veille"
)

// sectionsPath is the all-sections page; a topic slugged "sections" would
// be shadowed by it.
const sectionsPath = "/veille/sections"

func (s *Server) veilleFailedData() gin.H {
	return gin.H{
		"title": "Veille technologique",
		"page":  "veille",
		"error": loadFailedMessage,
	}
}

func (s *Server) veilleData(state veille.State) gin.H {
	page := render.BuildPage(s.veille.Catalog, state, s.links)
	return gin.H{
		"title":       "Veille technologique — " + page.Section.Title,
		"page":        "veille",
		"nav":         page.Nav,
		"section":     page.Section,
		"sectionsURL": sectionsPath,
	}
}

// isFragment reports an HTMX request that only swaps the section.
func isFragment(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func (s *Server) renderVeille(c *gin.Context, state veille.State) {
	if s.veille == nil {
		s.veilleFailed(c)
		return
	}
	if state.Filtered() && c.GetHeader("DNT") != "1" {
		s.metrics.TagFilters.WithLabelValues(s.veille.Catalog.Slug(state.Topic), state.Tag).Inc()
	}
	data := s.veilleData(state)
	if isFragment(c) {
		// The nav rides along out of band so the active topic follows the swap.
		data["oob"] = true
		c.HTML(http.StatusOK, "veille_fragment", data)
		return
	}
	c.HTML(http.StatusOK, "veille.html", data)
}

func (s *Server) veilleFailed(c *gin.Context) {
	if isFragment(c) {
		c.HTML(http.StatusServiceUnavailable, "veille_error", s.veilleFailedData())
		return
	}
	c.HTML(http.StatusServiceUnavailable, "veille.html", s.veilleFailedData())
}

func (s *Server) veilleIndex(c *gin.Context) {
	s.renderVeille(c, veille.Initial())
}

// veilleTopic resolves the slug and tag from the path. Only slugs and tags
// that exist are turned into state; anything else is a 404.
func (s *Server) veilleTopic(c *gin.Context) {
	if s.veille == nil {
		s.veilleFailed(c)
		return
	}
	catalog := s.veille.Catalog
	i, ok := catalog.Lookup(c.Param("topic"))
	if !ok {
		s.notFound(c, "Sujet de veille inconnu")
		return
	}
	state := veille.Initial().SelectTopic(catalog, i)

	if tag := c.Param("tag"); tag != "" {
		if !slices.Contains(veille.Vocabulary(catalog.Topic(i)), tag) {
			s.notFound(c, "Tag inconnu")
			return
		}
		state = state.SelectTag(tag)
	}
	s.renderVeille(c, state)
}

func (s *Server) veilleSectionsData(filters render.Filters) gin.H {
	return gin.H{
		"title":    "Veille technologique",
		"page":     "veille",
		"sections": render.BuildSections(s.veille.Catalog, filters, sectionsPath),
		"pageURL":  s.links.Index(),
	}
}

func (s *Server) veilleSections(c *gin.Context) {
	if s.veille == nil {
		c.HTML(http.StatusServiceUnavailable, "veille_sections.html", s.veilleFailedData())
		return
	}
	filters := render.Filters(c.QueryMap("tag"))
	c.HTML(http.StatusOK, "veille_sections.html", s.veilleSectionsData(filters))
}

// veilleDocument serves the loaded content document as-is.
func (s *Server) veilleDocument(c *gin.Context) {
	if s.veille == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": loadFailedMessage})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", s.veille.Raw)
}
