package ingest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

// maxCategories caps the tags taken from an entry's own categories.
const maxCategories = 5

// Item is one feed entry normalised for the content document.
type Item struct {
	Title       string
	Link        string
	Date        string
	Published   time.Time // zero when the feed gave no parseable date
	Description string
	Image       string
	Source      string
	Lang        string
	Tags        []string
}

// Fetcher downloads and parses feeds.
type Fetcher struct {
	Client  *http.Client
	Workers int
	Logger  *slog.Logger
}

// FetchAll fetches feeds with at most Workers in flight. A feed that fails
// is logged and contributes nothing. Items come back grouped by feed in
// the order the feeds were given, whatever order they finish in.
func (f Fetcher) FetchAll(ctx context.Context, feeds []Feed) ([]Item, error) {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := f.Workers
	if workers <= 0 {
		workers = DefaultMaxWorkers
	}

	results := make([][]Item, len(feeds))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, feed := range feeds {
		g.Go(func() error {
			items, err := f.fetch(ctx, feed)
			if err != nil {
				logger.Warn("feed skipped", "feed", feed.Name, "url", feed.URL, "error", err)
				return nil
			}
			logger.Info("feed fetched", "feed", feed.Name, "items", len(items))
			results[i] = items
			return nil
		})
	}
	g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []Item
	for _, items := range results {
		all = append(all, items...)
	}
	return all, nil
}

func (f Fetcher) fetch(ctx context.Context, feed Feed) ([]Item, error) {
	parser := gofeed.NewParser()
	if f.Client != nil {
		parser.Client = f.Client
	}
	parsed, err := parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, err
	}
	var items []Item
	for _, entry := range parsed.Items {
		if item, ok := parseItem(entry, feed); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// parseItem keeps entries that have both a title and a link.
func parseItem(entry *gofeed.Item, feed Feed) (Item, bool) {
	item := Item{
		Title:  strings.TrimSpace(entry.Title),
		Link:   strings.TrimSpace(entry.Link),
		Source: feed.Name,
		Lang:   feed.Lang,
	}
	if item.Title == "" || item.Link == "" {
		return Item{}, false
	}

	switch {
	case entry.PublishedParsed != nil:
		item.Published = *entry.PublishedParsed
	case entry.UpdatedParsed != nil:
		item.Published = *entry.UpdatedParsed
	}
	if !item.Published.IsZero() {
		item.Date = FormatDateFR(item.Published)
	} else if entry.Published != "" {
		item.Date = entry.Published
	} else {
		item.Date = entry.Updated
	}

	body := entry.Description
	if body == "" {
		body = entry.Content
	}
	item.Description = Truncate(CleanHTML(body))
	item.Image = entryImage(entry, body)

	for _, c := range entry.Categories {
		if c = strings.TrimSpace(c); c != "" && len(item.Tags) < maxCategories {
			item.Tags = append(item.Tags, c)
		}
	}
	return item, true
}

func entryImage(entry *gofeed.Item, body string) string {
	if entry.Image != nil && entry.Image.URL != "" {
		return entry.Image.URL
	}
	for _, enc := range entry.Enclosures {
		if strings.Contains(enc.Type, "image") && enc.URL != "" {
			return enc.URL
		}
	}
	if media, ok := entry.Extensions["media"]; ok {
		for _, m := range media["content"] {
			if m.Attrs["medium"] == "image" || strings.Contains(m.Attrs["type"], "image") {
				if u := m.Attrs["url"]; u != "" {
					return u
				}
			}
		}
		for _, m := range media["thumbnail"] {
			if u := m.Attrs["url"]; u != "" {
				return u
			}
		}
	}
	return firstImage(body)
}

// FilterAge drops items dated more than maxAgeDays before now. Undated
// items are kept; maxAgeDays <= 0 keeps everything.
func FilterAge(items []Item, maxAgeDays int, now time.Time) []Item {
	if maxAgeDays <= 0 {
		return items
	}
	cutoff := now.AddDate(0, 0, -maxAgeDays)
	var kept []Item
	for _, item := range items {
		if item.Published.IsZero() || !item.Published.Before(cutoff) {
			kept = append(kept, item)
		}
	}
	return kept
}
