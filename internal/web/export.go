package web

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/devfolio/portfolio/internal/content"
	"github.com/devfolio/portfolio/internal/veille"
)

// ExportStats summarises one static export.
type ExportStats struct {
	Pages   int
	Assets  int
	Skipped []string
}

// Export writes every path-addressable page under dir as <path>/index.html,
// plus the content document and the static assets. The sections page is
// driven by query parameters and is only available from the server.
func (s *Server) Export(dir string) (ExportStats, error) {
	var stats ExportStats
	if s.veille == nil {
		return stats, fmt.Errorf("export: %w", s.veilleErr)
	}

	write := func(rel, name string, data any) error {
		if err := s.writePage(dir, rel, name, data); err != nil {
			return fmt.Errorf("export %s: %w", "/"+rel, err)
		}
		stats.Pages++
		return nil
	}

	if err := write("", "index.html", s.homeData()); err != nil {
		return stats, err
	}
	if err := write("career", "career.html", s.careerData()); err != nil {
		return stats, err
	}
	if err := write("cursus", "cursus.html", s.cursusData()); err != nil {
		return stats, err
	}
	if err := write("profile", "profile.html", s.profileData()); err != nil {
		return stats, err
	}
	if err := write("projects", "projects.html", s.projectsData("")); err != nil {
		return stats, err
	}
	if s.projectsErr == nil {
		for _, tag := range content.ProjectTags {
			if err := write("projects/tag/"+tag, "projects.html", s.projectsData(tag)); err != nil {
				return stats, err
			}
		}
	}

	catalog := s.veille.Catalog
	if err := write("veille", "veille.html", s.veilleData(veille.Initial())); err != nil {
		return stats, err
	}
	for i := 0; i < catalog.Len(); i++ {
		slug := catalog.Slug(i)
		state := veille.Initial().SelectTopic(catalog, i)
		if err := write("veille/"+slug, "veille.html", s.veilleData(state)); err != nil {
			return stats, err
		}
		for _, tag := range veille.Vocabulary(catalog.Topic(i)) {
			if !pathSegment(tag) {
				s.logger.Warn("tag cannot be exported as a path segment", "topic", slug, "tag", tag)
				stats.Skipped = append(stats.Skipped, slug+"/"+tag)
				continue
			}
			if err := write("veille/"+slug+"/tag/"+tag, "veille.html", s.veilleData(state.SelectTag(tag))); err != nil {
				return stats, err
			}
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "veille.json"), s.veille.Raw, 0o644); err != nil {
		return stats, fmt.Errorf("export veille.json: %w", err)
	}

	n, err := copyStatic(filepath.Join(dir, "static"))
	stats.Assets = n
	if err != nil {
		return stats, fmt.Errorf("export static: %w", err)
	}
	return stats, nil
}

func (s *Server) writePage(dir, rel, name string, data any) error {
	target := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(target, "index.html"))
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// pathSegment reports whether tag maps onto exactly one directory name.
func pathSegment(tag string) bool {
	return tag != "." && tag != ".." && !strings.ContainsAny(tag, `/\`)
}

func copyStatic(dst string) (int, error) {
	n := 0
	err := fs.WalkDir(staticFS, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, "static"), "/")
		target := filepath.Join(dst, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := staticFS.ReadFile(path.Clean(p))
		if err != nil {
			return err
		}
		n++
		return os.WriteFile(target, data, 0o644)
	})
	return n, err
}
