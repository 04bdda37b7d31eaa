package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRunConfig(t *testing.T, base string) string {
	t.Helper()
	cfg := fmt.Sprintf(`
max_workers: 2
max_age_days: 30
rss_feeds:
  news:
    - name: Security Weekly
      url: %[1]s/security.xml
    - name: Broken
      url: %[1]s/broken.xml
  vendors:
    - name: Vendor
      url: %[1]s/vendor.xml
      lang: fr
topics:
  MFA:
    veille_index: 0
    keywords: [mfa, multi-factor]
  ZTNA:
    veille_index: 1
    keywords: [ztna, zero trust]
  SIEM:
    veille_index: 2
    keywords: [siem]
`, base)
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func runOptions(t *testing.T) RunOptions {
	t.Helper()
	srv := newFeedServer(t)
	dir := t.TempDir()
	return RunOptions{
		ConfigPath:  writeRunConfig(t, srv.URL),
		ContentPath: writeContent(t),
		HistoryPath: filepath.Join(dir, "history.db"),
		CSVDir:      filepath.Join(dir, "exports"),
		MaxAgeDays:  -1,
		Client:      srv.Client(),
		Now:         fixedNow,
	}
}

func TestRun_EndToEnd(t *testing.T) {
	opts := runOptions(t)
	opts.ExportCSV = true
	var out bytes.Buffer
	opts.Out = &out

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, result.Topics, 3)
	assert.Len(t, result.Topics[0].New, 1, "MFA")
	assert.Len(t, result.Topics[1].New, 2, "ZTNA")
	assert.Len(t, result.Topics[2].New, 1, "SIEM: the 2024 story is too old, the undated one is kept")
	assert.Equal(t, 4, result.Total)

	doc := readDocument(t, result.VersionPath)
	assert.Equal(t, "https://sec.example/mfa-bypass", doc.Topics[0].Articles[1].Link)
	assert.Equal(t, "https://sec.example/ztna", doc.Topics[1].Articles[0].Link)
	assert.Equal(t, "https://vendor.example/guide", doc.Topics[1].Articles[1].Link)

	csvs, err := filepath.Glob(filepath.Join(opts.CSVDir, "veille_*_20261019_120000.csv"))
	require.NoError(t, err)
	assert.Len(t, csvs, 3)
	data, err := os.ReadFile(filepath.Join(opts.CSVDir, "veille_MFA_20261019_120000.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "date,title,link,description,source,tags\n")
	assert.Contains(t, string(data), "12 Octobre 2026,New MFA bypass exploit,https://sec.example/mfa-bypass")

	report := out.String()
	assert.Contains(t, report, "MFA : 1 trouves, 1 nouveaux")
	assert.Contains(t, report, "TOTAL : 4 nouveaux articles")
	assert.Contains(t, report, "19-10-2026-veille.json")
	assert.Contains(t, report, "--apply")

	again, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, again.Total, "history remembers the first run")
	assert.Empty(t, again.VersionPath)
}

func TestRun_TopicSelectionAndMaxAge(t *testing.T) {
	opts := runOptions(t)
	opts.Topics = []string{"SIEM"}
	opts.MaxAgeDays = 0
	opts.DryRun = true

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Topics, 1)
	assert.Equal(t, "SIEM", result.Topics[0].Name)
	assert.Len(t, result.Topics[0].New, 2, "age filter disabled")
	assert.Empty(t, result.VersionPath)
}

func TestRun_UnknownTopic(t *testing.T) {
	opts := runOptions(t)
	opts.Topics = []string{"XDR"}

	_, err := Run(context.Background(), opts)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestRun_DryRunLeavesNoHistory(t *testing.T) {
	opts := runOptions(t)
	opts.DryRun = true

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.NoFileExists(t, opts.HistoryPath)
}

func TestRun_DryRunReadsExistingHistory(t *testing.T) {
	opts := runOptions(t)
	_, err := Run(context.Background(), opts)
	require.NoError(t, err)
	before, err := os.ReadFile(opts.HistoryPath)
	require.NoError(t, err)

	opts.DryRun = true
	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, result.Total, "links from the first run are still known")

	after, err := os.ReadFile(opts.HistoryPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
