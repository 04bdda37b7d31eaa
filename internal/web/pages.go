package web

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/portfolio/internal/content"
)

func (s *Server) homeData() gin.H {
	return gin.H{
		"title":    s.profile.Name,
		"page":     "home",
		"profile":  s.profile,
		"veille":   s.veilleTeaser(),
		"projects": len(s.projects),
	}
}

// veilleTeaser lists topic titles for the home page, empty when the
// content failed to load.
func (s *Server) veilleTeaser() []string {
	if s.veille == nil {
		return nil
	}
	var titles []string
	for _, t := range s.veille.Catalog.Topics() {
		titles = append(titles, t.Title)
	}
	return titles
}

func (s *Server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.homeData())
}

func (s *Server) careerData() gin.H {
	return gin.H{
		"title":     "Carrière",
		"page":      "career",
		"companies": s.profile.Career,
	}
}

func (s *Server) career(c *gin.Context) {
	c.HTML(http.StatusOK, "career.html", s.careerData())
}

func (s *Server) cursusData() gin.H {
	return gin.H{
		"title":  "Cursus",
		"page":   "cursus",
		"cursus": s.profile.Cursus,
	}
}

func (s *Server) cursus(c *gin.Context) {
	c.HTML(http.StatusOK, "cursus.html", s.cursusData())
}

func (s *Server) profileData() gin.H {
	return gin.H{
		"title":   "Profil",
		"page":    "profile",
		"profile": s.profile,
	}
}

func (s *Server) profilePage(c *gin.Context) {
	c.HTML(http.StatusOK, "profile.html", s.profileData())
}

type projectFilter struct {
	Tag    string
	Label  string
	Href   string
	Count  int
	Active bool
}

func (s *Server) projectsData(tag string) gin.H {
	if s.projectsErr != nil {
		return gin.H{"title": "Projets", "page": "projects", "error": loadFailedMessage}
	}
	filters := []projectFilter{{
		Label:  "Tous",
		Href:   "/projects",
		Count:  len(s.projects),
		Active: tag == "",
	}}
	for _, t := range content.ProjectTags {
		href := "/projects/tag/" + t
		if t == tag {
			href = "/projects"
		}
		filters = append(filters, projectFilter{
			Tag:    t,
			Label:  content.ProjectTagLabel(t),
			Href:   href,
			Count:  len(content.FilterProjects(s.projects, t)),
			Active: t == tag,
		})
	}
	return gin.H{
		"title":    "Projets",
		"page":     "projects",
		"filters":  filters,
		"projects": content.FilterProjects(s.projects, tag),
	}
}

func (s *Server) projectList(c *gin.Context) {
	tag := c.Param("tag")
	if tag != "" && !content.IsProjectTag(tag) {
		s.notFound(c, "Catégorie inconnue")
		return
	}
	status := http.StatusOK
	if s.projectsErr != nil {
		status = http.StatusServiceUnavailable
	}
	c.HTML(status, "projects.html", s.projectsData(tag))
}

// projectDownload offers a project summary as a JSON attachment.
func (s *Server) projectDownload(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		s.notFound(c, "Projet introuvable")
		return
	}
	p, ok := content.FindProject(s.projects, id)
	if !ok {
		s.notFound(c, "Projet introuvable")
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": p.CardFilename(),
	}))
	c.JSON(http.StatusOK, p.Card())
}
