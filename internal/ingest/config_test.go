package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
max_workers: 4
rss_feeds:
  news:
    - name: Zeta
      url: https://zeta.example/feed
    - name: Alpha
      url: https://alpha.example/feed
      lang: fr
  vendors:
    - name: Vendor
      url: https://vendor.example/rss
topics:
  ZTNA:
    veille_index: 1
    keywords: [ztna, zero trust]
  MFA:
    veille_index: 0
    keywords: [mfa, multi-factor]
`

func TestParseConfig_KeepsFileOrder(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MaxWorkers)
	assert.Equal(t, DefaultMaxAgeDays, cfg.MaxAgeDays)

	require.Len(t, cfg.Feeds, 2)
	assert.Equal(t, "news", cfg.Feeds[0].Category)
	var names []string
	for _, f := range cfg.AllFeeds() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Zeta", "Alpha", "Vendor"}, names)
	assert.Equal(t, "en", cfg.AllFeeds()[0].Lang, "lang defaults to en")
	assert.Equal(t, "fr", cfg.AllFeeds()[1].Lang)

	require.Len(t, cfg.Topics, 2)
	assert.Equal(t, "ZTNA", cfg.Topics[0].Name)
	assert.Equal(t, 1, cfg.Topics[0].VeilleIndex)
	assert.Equal(t, "MFA", cfg.Topics[1].Name)
}

func TestParseConfig_AcceptsJSON(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"rss_feeds": {"news": [{"name": "A", "url": "https://a.example/rss", "lang": "en"}]}, ` +
		`"topics": {"SIEM": {"veille_index": 2, "keywords": ["siem"]}}}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxWorkers, cfg.MaxWorkers)
	assert.Equal(t, "SIEM", cfg.Topics[0].Name)
}

func TestParseConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"syntax":      "rss_feeds: [",
		"no feeds":    "topics: {MFA: {veille_index: 0, keywords: [mfa]}}",
		"no topics":   "rss_feeds: {news: [{name: A, url: https://a.example}]}",
		"bad url":     "rss_feeds: {news: [{name: A, url: nope}]}\ntopics: {MFA: {veille_index: 0, keywords: [mfa]}}",
		"no keywords": "rss_feeds: {news: [{name: A, url: https://a.example}]}\ntopics: {MFA: {veille_index: 0, keywords: []}}",
		"workers":     "max_workers: 0\nrss_feeds: {news: [{name: A, url: https://a.example}]}\ntopics: {MFA: {veille_index: 0, keywords: [mfa]}}",
		"feeds list":  "rss_feeds: [a, b]\ntopics: {MFA: {veille_index: 0, keywords: [mfa]}}",
	}
	for name, data := range cases {
		_, err := ParseConfig([]byte(data))
		assert.ErrorIs(t, err, ErrConfig, name)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSelectTopics(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	all, err := cfg.SelectTopics(nil)
	require.NoError(t, err)
	assert.Len(t, all.Topics, 2)

	one, err := cfg.SelectTopics([]string{"MFA"})
	require.NoError(t, err)
	require.Len(t, one.Topics, 1)
	assert.Equal(t, "MFA", one.Topics[0].Name)
	assert.Len(t, cfg.Topics, 2, "original config untouched")

	_, err = cfg.SelectTopics([]string{"mfa"})
	assert.ErrorIs(t, err, ErrConfig, "names are exact")
}
