package veille

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the on-disk shape of the veille content file.
type Document struct {
	Topics []Topic `json:"veilles"`
}

type topicJSON struct {
	Title         string          `json:"title"`
	SubTitle      string          `json:"sub-title,omitempty"`
	Subtitle      string          `json:"subtitle,omitempty"`
	Definition    string          `json:"definition,omitempty"`
	Mechanism     string          `json:"fonctionnement,omitempty"`
	Prerequisites json.RawMessage `json:"prerequis,omitempty"`
	Solutions     json.RawMessage `json:"solutions,omitempty"`
	Articles      []Article       `json:"articles"`
}

type prerequisiteJSON struct {
	Title       string `json:"title"`
	Mechanism   string `json:"fonctionnement,omitempty"`
	Protocol    string `json:"protocole,omitempty"`
	Environment string `json:"environnement,omitempty"`
	Link        string `json:"link,omitempty"`
}

type articleJSON struct {
	Date            string   `json:"date,omitempty"`
	Title           string   `json:"title,omitempty"`
	Image           string   `json:"image,omitempty"`
	Link            string   `json:"link,omitempty"`
	RedirectionLink string   `json:"redirectionLink,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Description     string   `json:"description,omitempty"`
	Source          string   `json:"source,omitempty"`
}

// UnmarshalJSON accepts both the current and the legacy key names.
func (t *Topic) UnmarshalJSON(data []byte) error {
	var raw topicJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Topic{
		Title:      raw.Title,
		Subtitle:   raw.SubTitle,
		Definition: raw.Definition,
		Mechanism:  raw.Mechanism,
		Articles:   raw.Articles,
	}
	if t.Subtitle == "" {
		t.Subtitle = raw.Subtitle
	}
	notes := raw.Prerequisites
	if isEmptyJSON(notes) {
		notes = raw.Solutions
	}
	prereqs, err := decodePrerequisites(notes)
	if err != nil {
		return fmt.Errorf("topic %q: %w", raw.Title, err)
	}
	t.Prerequisites = prereqs
	return nil
}

// MarshalJSON writes canonical key names only.
func (t Topic) MarshalJSON() ([]byte, error) {
	out := struct {
		Title         string         `json:"title"`
		Subtitle      string         `json:"sub-title"`
		Definition    string         `json:"definition"`
		Mechanism     string         `json:"fonctionnement"`
		Prerequisites []Prerequisite `json:"prerequis"`
		Articles      []Article      `json:"articles"`
	}{t.Title, t.Subtitle, t.Definition, t.Mechanism, t.Prerequisites, t.Articles}
	if out.Prerequisites == nil {
		out.Prerequisites = []Prerequisite{}
	}
	if out.Articles == nil {
		out.Articles = []Article{}
	}
	return marshal(out)
}

func (p *Prerequisite) UnmarshalJSON(data []byte) error {
	var raw prerequisiteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Prerequisite(raw)
	return nil
}

func (p Prerequisite) MarshalJSON() ([]byte, error) {
	return marshal(prerequisiteJSON(p))
}

func (a *Article) UnmarshalJSON(data []byte) error {
	var raw articleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Article{
		Title:       raw.Title,
		Description: raw.Description,
		Source:      raw.Source,
		Image:       raw.Image,
		Link:        raw.Link,
		Date:        raw.Date,
		Tags:        raw.Tags,
	}
	if a.Link == "" {
		a.Link = raw.RedirectionLink
	}
	return nil
}

func (a Article) MarshalJSON() ([]byte, error) {
	return marshal(articleJSON{
		Date:        a.Date,
		Title:       a.Title,
		Image:       a.Image,
		Link:        a.Link,
		Tags:        a.Tags,
		Description: a.Description,
		Source:      a.Source,
	})
}

// Decode parses a veille document.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Encode renders doc with four-space indentation and without HTML escaping
// so accented text and links stay readable in version control.
func Encode(doc Document) ([]byte, error) {
	if doc.Topics == nil {
		doc.Topics = []Topic{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodePrerequisites accepts an array or an object. Object values are
// taken in document order, which encoding/json maps would lose.
func decodePrerequisites(data json.RawMessage) ([]Prerequisite, error) {
	if isEmptyJSON(data) {
		return nil, nil
	}
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] == '[' {
		var list []Prerequisite
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("prerequisites: %w", err)
		}
		return list, nil
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("prerequisites: expected array or object")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("prerequisites: %w", err)
	}
	var list []Prerequisite
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil, fmt.Errorf("prerequisites: %w", err)
		}
		var p Prerequisite
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("prerequisites: %w", err)
		}
		list = append(list, p)
	}
	return list, nil
}

// marshal is json.Marshal without HTML escaping; nested Marshalers must
// agree with Encode or links would come out with \u0026.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isEmptyJSON(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
