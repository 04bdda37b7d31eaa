package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/devfolio/portfolio/internal/veille"
)

// UpdateOptions control how new articles are written.
type UpdateOptions struct {
	// DryRun computes the result without writing anything.
	DryRun bool
	// Apply overwrites the document (after a .bak copy) in addition to
	// writing the dated version.
	Apply bool
	// MaxArticles caps new articles per topic; 0 means no cap.
	MaxArticles int
	// VersionDir receives dated copies; defaults to "versions" next to the
	// document.
	VersionDir string
	Now        func() time.Time
	Logger     *slog.Logger
}

// TopicResult is the outcome for one topic.
type TopicResult struct {
	Name  string
	Found int
	New   []veille.Article
}

// UpdateResult summarises an update.
type UpdateResult struct {
	Topics      []TopicResult
	Total       int
	VersionPath string
	BackupPath  string
}

// Update appends the new items of each bucket to the document at path.
// An item is new when its link is neither in the document nor in history.
// Nothing is written, and history is left untouched, when no item is new.
func Update(ctx context.Context, path string, buckets []Bucket, history *History, opts UpdateOptions) (UpdateResult, error) {
	var result UpdateResult
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("update: %w", err)
	}
	doc, err := veille.Decode(raw)
	if err != nil {
		return result, fmt.Errorf("update %s: %w", path, err)
	}

	known := make(map[string]bool)
	for _, t := range doc.Topics {
		for _, a := range t.Articles {
			if a.Link != "" {
				known[a.Link] = true
			}
		}
	}

	var recorded []Entry
	for _, b := range buckets {
		tr := TopicResult{Name: b.Topic.Name, Found: len(b.Items)}
		if b.Topic.VeilleIndex >= len(doc.Topics) {
			logger.Warn("topic index out of range, skipped", "topic", b.Topic.Name, "index", b.Topic.VeilleIndex, "topics", len(doc.Topics))
			result.Topics = append(result.Topics, tr)
			continue
		}
		for _, item := range b.Items {
			if opts.MaxArticles > 0 && len(tr.New) == opts.MaxArticles {
				break
			}
			if known[item.Link] {
				continue
			}
			if history != nil {
				seen, err := history.Seen(ctx, item.Link)
				if err != nil {
					return result, err
				}
				if seen {
					continue
				}
			}
			known[item.Link] = true
			tr.New = append(tr.New, toArticle(item, b.Topic.Name))
			recorded = append(recorded, Entry{Link: item.Link, Topic: b.Topic.Name})
		}
		if !opts.DryRun {
			t := &doc.Topics[b.Topic.VeilleIndex]
			t.Articles = append(t.Articles, tr.New...)
		}
		result.Total += len(tr.New)
		result.Topics = append(result.Topics, tr)
	}

	if opts.DryRun || result.Total == 0 {
		return result, nil
	}

	out, err := veille.Encode(doc)
	if err != nil {
		return result, fmt.Errorf("update: %w", err)
	}
	dir := opts.VersionDir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(path), "versions")
	}
	result.VersionPath, err = writeVersion(dir, now(), out)
	if err != nil {
		return result, fmt.Errorf("update: %w", err)
	}
	logger.Info("version written", "path", result.VersionPath)

	if opts.Apply {
		result.BackupPath = path + ".bak"
		if err := os.WriteFile(result.BackupPath, raw, 0o644); err != nil {
			return result, fmt.Errorf("update: backup: %w", err)
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return result, fmt.Errorf("update: %w", err)
		}
		logger.Info("content document updated", "path", path, "backup", result.BackupPath)
	}

	if history != nil {
		if err := history.Record(ctx, recorded, now()); err != nil {
			return result, err
		}
	}
	return result, nil
}

// toArticle converts an item, keeping only fields that have a value.
func toArticle(item Item, topic string) veille.Article {
	return veille.Article{
		Date:        item.Date,
		Title:       item.Title,
		Image:       item.Image,
		Link:        item.Link,
		Tags:        AutoTag(item, topic),
		Description: item.Description,
		Source:      item.Source,
	}
}

// VersionName is the dated file name for day, with a -vN suffix for the
// nth version of that day.
func VersionName(day time.Time, n int) string {
	name := day.Format("02-01-2006") + "-veille"
	if n > 1 {
		name += fmt.Sprintf("-v%d", n)
	}
	return name + ".json"
}

// writeVersion creates the first free version file of the day in dir.
func writeVersion(dir string, now time.Time, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	for n := 1; ; n++ {
		p := filepath.Join(dir, VersionName(now, n))
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", err
		}
		return p, f.Close()
	}
}
