package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio/internal/config"
	"github.com/devfolio/portfolio/internal/content"
)

func TestVeilleSource(t *testing.T) {
	assert.Equal(t, content.HTTP{URL: "https://x.example/v.json"}, veilleSource(config.Config{ContentURL: "https://x.example/v.json"}))
	assert.Equal(t, content.File{Path: "v.json"}, veilleSource(config.Config{ContentPath: "v.json"}))
	assert.Equal(t, "bundled:veille.json", veilleSource(config.Config{}).String())
	assert.Equal(t, "bundled:projects.json", projectsSource(config.Config{}).String())
}

func TestWithLogFlags(t *testing.T) {
	base := config.Config{Port: "8080", LogLevel: "info", LogFormat: "text"}

	c := withLogFlags(base, "DEBUG", "JSON")
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	require.NoError(t, c.Validate())

	assert.Equal(t, base, withLogFlags(base, "", ""), "unset flags keep the environment")
}

func TestLoadSite_CarriesLoadErrors(t *testing.T) {
	opts := loadSite(context.Background(), config.Config{ContentPath: filepath.Join(t.TempDir(), "missing.json")})
	assert.Nil(t, opts.Veille)
	assert.ErrorIs(t, opts.VeilleErr, content.ErrLoad)
	assert.NoError(t, opts.ProjectsErr)
}

func TestBuild_Bundled(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, build(context.Background(), config.Config{}, out))
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.FileExists(t, filepath.Join(out, "veille", "index.html"))
	assert.FileExists(t, filepath.Join(out, "veille.json"))
}

func TestBuild_FailsWhenVeilleFailsToLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veille.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"veilles": []}`), 0o644))

	err := build(context.Background(), config.Config{ContentPath: path}, t.TempDir())
	assert.ErrorIs(t, err, content.ErrLoad)
}

func TestWatchAndBuild_NeedsAFile(t *testing.T) {
	err := watchAndBuild(context.Background(), config.Config{}, t.TempDir())
	assert.Error(t, err)
}

func TestRootCommand_Help(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["build"])
	assert.True(t, names["veille"])

	fetch, _, err := rootCmd.Find([]string{"veille", "fetch"})
	require.NoError(t, err)
	assert.Equal(t, "fetch", fetch.Name())
	assert.NotNil(t, fetch.Flags().Lookup("dry-run"))
	assert.NotNil(t, fetch.Flags().ShorthandLookup("v"))
}
