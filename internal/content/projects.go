package content

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
)

// Project categories in display order.
var ProjectTags = []string{"school", "corporate", "myself"}

var projectTagLabels = map[string]string{
	"school":    "school",
	"corporate": "corporate",
	"myself":    "personal",
}

// ProjectTagLabel returns the display label of a project category.
func ProjectTagLabel(tag string) string {
	if label, ok := projectTagLabels[tag]; ok {
		return label
	}
	return tag
}

// IsProjectTag reports whether tag is one of ProjectTags.
func IsProjectTag(tag string) bool {
	return slices.Contains(ProjectTags, tag)
}

type Project struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Tag         string   `json:"tag"`
	Description string   `json:"description"`
	Source      string   `json:"source,omitempty"`
	Download    string   `json:"download,omitempty"`
	Languages   []string `json:"languages,omitempty"`
}

type projectsDocument struct {
	Projects []Project `json:"projects"`
}

// LoadProjects fetches and decodes the project gallery.
func LoadProjects(ctx context.Context, src Source) ([]Project, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, src, err)
	}
	var doc projectsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, src, err)
	}
	return doc.Projects, nil
}

// FilterProjects keeps the projects of category tag; an empty tag keeps all.
func FilterProjects(projects []Project, tag string) []Project {
	if tag == "" {
		return projects
	}
	var out []Project
	for _, p := range projects {
		if p.Tag == tag {
			out = append(out, p)
		}
	}
	return out
}

// FindProject looks a project up by id.
func FindProject(projects []Project, id int) (Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// ProjectCard is the summary offered as a download for a project.
type ProjectCard struct {
	Title       string `json:"title"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
}

// Card returns the downloadable summary of p.
func (p Project) Card() ProjectCard {
	return ProjectCard{Title: p.Title, Tag: p.Tag, Description: p.Description}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CardFilename names the downloaded summary after the project title.
func (p Project) CardFilename() string {
	return whitespaceRun.ReplaceAllString(p.Title, "_") + ".json"
}
