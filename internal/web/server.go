// Package web serves the portfolio pages with gin and exports the same
// pages as static files.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devfolio/portfolio/internal/content"
	"github.com/devfolio/portfolio/internal/render"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// loadFailedMessage is the one error indicator shown when the veille
// content is unavailable.
const loadFailedMessage = "content failed to load"

// Options carries everything loaded before the server starts. A nil
// Veille together with a non-nil VeilleErr puts every veille page into its
// error state while the rest of the site keeps working.
type Options struct {
	Veille      *content.Veille
	VeilleErr   error
	Projects    []content.Project
	ProjectsErr error
	Profile     content.Profile
	Registry    *prometheus.Registry
	Logger      *slog.Logger
}

type Server struct {
	veille      *content.Veille
	veilleErr   error
	projects    []content.Project
	projectsErr error
	profile     content.Profile

	links     render.PathLinks
	templates *template.Template
	metrics   *Metrics
	registry  *prometheus.Registry
	logger    *slog.Logger
}

func New(opts Options) (*Server, error) {
	if opts.Veille == nil && opts.VeilleErr == nil {
		return nil, fmt.Errorf("web: veille content or its load error is required")
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		veille:      opts.Veille,
		veilleErr:   opts.VeilleErr,
		projects:    opts.Projects,
		projectsErr: opts.ProjectsErr,
		profile:     opts.Profile,
		links:       render.PathLinks{Prefix: "/veille"},
		templates:   tmpl,
		metrics:     NewMetrics(reg),
		registry:    reg,
		logger:      logger,
	}
	if s.veille != nil {
		s.metrics.ContentLoaded.Set(1)
	} else {
		logger.Error("veille content unavailable", "error", s.veilleErr)
	}
	return s, nil
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"join":         strings.Join,
		"projectLabel": content.ProjectTagLabel,
	}
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}

// Router builds the gin engine with every route of the site.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.UseRawPath = true
	r.Use(gin.Recovery(), requestLogger(s.logger), s.metrics.pageViewMiddleware())
	r.SetHTMLTemplate(s.templates)

	static, _ := fs.Sub(staticFS, "static")
	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.home)
	r.GET("/career", s.career)
	r.GET("/cursus", s.cursus)
	r.GET("/profile", s.profilePage)

	r.GET("/projects", s.projectList)
	r.GET("/projects/tag/:tag", s.projectList)
	r.GET("/projects/:id/download", s.projectDownload)

	r.GET("/veille", s.veilleIndex)
	r.GET("/veille.json", s.veilleDocument)
	r.GET("/veille/sections", s.veilleSections)
	r.GET("/veille/:topic", s.veilleTopic)
	r.GET("/veille/:topic/tag/:tag", s.veilleTopic)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	r.NoRoute(func(c *gin.Context) {
		s.notFound(c, "Page introuvable")
	})
	return r
}

func (s *Server) notFound(c *gin.Context, msg string) {
	c.HTML(http.StatusNotFound, "error.html", gin.H{
		"title": "404",
		"page":  "",
		"error": msg,
	})
}
