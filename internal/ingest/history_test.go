package ingest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestLinkHash(t *testing.T) {
	// md5("https://example.com") = c984d06aafbecf6bc55569f964148ea3
	assert.Equal(t, "c984d06aafbe", LinkHash("https://example.com"))
	assert.Len(t, LinkHash(""), 12)
}

func TestHistory_RecordAndSeen(t *testing.T) {
	ctx := context.Background()
	h := openTestHistory(t)

	seen, err := h.Seen(ctx, "https://a.example/1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, h.Record(ctx, []Entry{
		{Link: "https://a.example/1", Topic: "MFA"},
		{Link: "https://a.example/1", Topic: "ZTNA"},
		{Link: "https://a.example/2", Topic: "ZTNA"},
	}, testNow))

	seen, err = h.Seen(ctx, "https://a.example/1")
	require.NoError(t, err)
	assert.True(t, seen)

	n, err := h.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "a link is stored once")
}

func TestHistory_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := OpenHistory(path)
	require.NoError(t, err)
	require.NoError(t, h.Record(ctx, []Entry{{Link: "https://a.example/1"}}, testNow))
	require.NoError(t, h.Close())

	h, err = OpenHistory(path)
	require.NoError(t, err)
	defer h.Close()
	seen, err := h.Seen(ctx, "https://a.example/1")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestHistory_Forget(t *testing.T) {
	ctx := context.Background()
	h := openTestHistory(t)

	require.NoError(t, h.Record(ctx, []Entry{{Link: "old"}}, testNow.AddDate(0, -13, 0)))
	require.NoError(t, h.Record(ctx, []Entry{{Link: "new"}}, testNow))

	removed, err := h.Forget(ctx, testNow.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	seen, err := h.Seen(ctx, "new")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestOpenHistoryReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := OpenHistoryReadOnly(path)
	require.NoError(t, err)
	assert.Nil(t, h, "missing file means empty history")
	assert.NoFileExists(t, path)

	rw, err := OpenHistory(path)
	require.NoError(t, err)
	require.NoError(t, rw.Record(ctx, []Entry{{Link: "https://a.example/1"}}, testNow))
	require.NoError(t, rw.Close())

	ro, err := OpenHistoryReadOnly(path)
	require.NoError(t, err)
	defer ro.Close()
	seen, err := ro.Seen(ctx, "https://a.example/1")
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Error(t, ro.Record(ctx, []Entry{{Link: "https://a.example/2"}}, testNow))
}
