// Package ingest refreshes the veille content document from RSS and Atom
// feeds: it fetches every configured feed, sorts entries into topics by
// keyword, tags them and appends the ones not seen before.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrConfig marks an unusable feed configuration.
var ErrConfig = errors.New("invalid ingest config")

const (
	DefaultMaxWorkers = 8
	DefaultMaxAgeDays = 30
)

// Config is the feed configuration file. JSON is valid YAML, so the older
// rss_sources.json files load unchanged.
type Config struct {
	MaxWorkers int        `yaml:"max_workers" validate:"min=1,max=64"`
	MaxAgeDays int        `yaml:"max_age_days" validate:"min=0"`
	Feeds      FeedGroups `yaml:"rss_feeds" validate:"required,dive"`
	Topics     Topics     `yaml:"topics" validate:"required,dive"`
}

type Feed struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"required,url"`
	Lang string `yaml:"lang"`
}

// FeedGroup is one category of feeds, e.g. "news" or "vendors".
type FeedGroup struct {
	Category string
	Feeds    []Feed `validate:"dive"`
}

// FeedGroups keeps the categories in file order.
type FeedGroups []FeedGroup

// TopicRule routes entries to the content topic at VeilleIndex when any
// keyword matches.
type TopicRule struct {
	Name        string   `yaml:"-"`
	VeilleIndex int      `yaml:"veille_index" validate:"min=0"`
	Keywords    []string `yaml:"keywords" validate:"required,min=1,dive,required"`
}

// Topics keeps the topics in file order.
type Topics []TopicRule

func (g *FeedGroups) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: rss_feeds must map a category to a list of feeds", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var feeds []Feed
		if err := node.Content[i+1].Decode(&feeds); err != nil {
			return err
		}
		*g = append(*g, FeedGroup{Category: node.Content[i].Value, Feeds: feeds})
	}
	return nil
}

func (t *Topics) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: topics must map a name to a rule", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var rule TopicRule
		if err := node.Content[i+1].Decode(&rule); err != nil {
			return err
		}
		rule.Name = node.Content[i].Value
		*t = append(*t, rule)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig reads and validates the config file at path. Keys that are
// absent keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	cfg := Config{MaxWorkers: DefaultMaxWorkers, MaxAgeDays: DefaultMaxAgeDays}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	for i := range cfg.Feeds {
		for j := range cfg.Feeds[i].Feeds {
			if cfg.Feeds[i].Feeds[j].Lang == "" {
				cfg.Feeds[i].Feeds[j].Lang = "en"
			}
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return cfg, nil
}

// AllFeeds flattens the categories in order.
func (c Config) AllFeeds() []Feed {
	var feeds []Feed
	for _, g := range c.Feeds {
		feeds = append(feeds, g.Feeds...)
	}
	return feeds
}

// SelectTopics narrows the config to the named topics. Names are matched
// exactly; an unknown name is an error.
func (c Config) SelectTopics(names []string) (Config, error) {
	if len(names) == 0 {
		return c, nil
	}
	for _, name := range names {
		if !slices.ContainsFunc(c.Topics, func(t TopicRule) bool { return t.Name == name }) {
			return Config{}, fmt.Errorf("%w: unknown topic %q", ErrConfig, name)
		}
	}
	out := c
	out.Topics = nil
	for _, t := range c.Topics {
		if slices.Contains(names, t.Name) {
			out.Topics = append(out.Topics, t)
		}
	}
	return out, nil
}
