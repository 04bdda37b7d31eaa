package web

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "portfolio"

// Metrics replaces per-visitor tracking with aggregate counters: no
// address, cookie or user agent is ever recorded.
type Metrics struct {
	// PageViews counts rendered pages. Labels: route, status.
	PageViews *prometheus.CounterVec

	// RenderSeconds measures handler latency. Labels: route.
	RenderSeconds *prometheus.HistogramVec

	// TagFilters counts filtered veille views. Labels: topic, tag.
	TagFilters *prometheus.CounterVec

	// ContentLoaded is 1 when the veille content loaded, 0 otherwise.
	ContentLoaded prometheus.Gauge
}

// NewMetrics registers the site metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PageViews: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "page_views_total",
			Help:      "Pages served, by route and status code.",
		}, []string{"route", "status"}),
		RenderSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering a page.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"route"}),
		TagFilters: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "veille",
			Name:      "tag_filters_total",
			Help:      "Veille views with an active tag filter.",
		}, []string{"topic", "tag"}),
		ContentLoaded: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "veille",
			Name:      "content_loaded",
			Help:      "1 when the veille content is available.",
		}),
	}
}

// untracked reports paths that are not pages.
func untracked(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/favicon") ||
		path == "/metrics" ||
		path == "/healthz"
}

// pageViewMiddleware counts page views. Requests carrying DNT: 1 are
// served normally but not counted.
func (m *Metrics) pageViewMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if untracked(c.Request.URL.Path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.PageViews.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RenderSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
