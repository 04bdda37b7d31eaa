package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var csvHeader = []string{"date", "title", "link", "description", "source", "tags"}

// ExportCSV writes one file per non-empty bucket into dir and returns the
// paths written.
func ExportCSV(dir string, buckets []Bucket, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	stamp := now.Format("20060102_150405")

	var paths []string
	for _, b := range buckets {
		if len(b.Items) == 0 {
			continue
		}
		p := filepath.Join(dir, fmt.Sprintf("veille_%s_%s.csv", b.Topic.Name, stamp))
		if err := writeCSV(p, b.Items); err != nil {
			return paths, fmt.Errorf("export csv %s: %w", b.Topic.Name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func writeCSV(path string, items []Item) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Write(csvHeader)
	for _, item := range items {
		w.Write([]string{item.Date, item.Title, item.Link, item.Description, item.Source, strings.Join(item.Tags, ", ")})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
