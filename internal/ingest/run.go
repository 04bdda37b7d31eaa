package ingest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// RunOptions configure one refresh.
type RunOptions struct {
	ConfigPath  string
	ContentPath string
	HistoryPath string
	CSVDir      string
	VersionDir  string

	Topics      []string
	DryRun      bool
	Apply       bool
	ExportCSV   bool
	MaxArticles int
	// MaxAgeDays overrides the config when >= 0.
	MaxAgeDays int
	// HistoryRetentionDays forgets history older than this many days;
	// 0 keeps everything.
	HistoryRetentionDays int

	Client *http.Client
	Now    func() time.Time
	Logger *slog.Logger
	Out    io.Writer
}

// Run fetches, categorises and merges new articles into the content
// document, then prints the report to Out.
func Run(ctx context.Context, opts RunOptions) (UpdateResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	started := now()

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return UpdateResult{}, err
	}
	if cfg, err = cfg.SelectTopics(opts.Topics); err != nil {
		return UpdateResult{}, err
	}
	maxAge := cfg.MaxAgeDays
	if opts.MaxAgeDays >= 0 {
		maxAge = opts.MaxAgeDays
	}

	feeds := cfg.AllFeeds()
	logger.Info("fetching feeds", "feeds", len(feeds), "workers", cfg.MaxWorkers)
	items, err := Fetcher{Client: opts.Client, Workers: cfg.MaxWorkers, Logger: logger}.FetchAll(ctx, feeds)
	if err != nil {
		return UpdateResult{}, err
	}
	fetched := len(items)
	items = FilterAge(items, maxAge, started)
	logger.Info("items fetched", "total", fetched, "recent", len(items), "max_age_days", maxAge)

	buckets := Categorize(items, cfg.Topics)

	var history *History
	if opts.DryRun {
		history, err = OpenHistoryReadOnly(opts.HistoryPath)
	} else {
		history, err = OpenHistory(opts.HistoryPath)
	}
	if err != nil {
		return UpdateResult{}, err
	}
	if history != nil {
		defer history.Close()
	}
	if opts.HistoryRetentionDays > 0 && !opts.DryRun {
		n, err := history.Forget(ctx, started.AddDate(0, 0, -opts.HistoryRetentionDays))
		if err != nil {
			return UpdateResult{}, err
		}
		if n > 0 {
			logger.Info("history pruned", "removed", n)
		}
	}

	uopts := UpdateOptions{
		DryRun:      opts.DryRun,
		Apply:       opts.Apply,
		MaxArticles: opts.MaxArticles,
		VersionDir:  opts.VersionDir,
		Now:         now,
		Logger:      logger,
	}
	result, err := Update(ctx, opts.ContentPath, buckets, history, uopts)
	if err != nil {
		return result, err
	}

	if opts.ExportCSV {
		paths, err := ExportCSV(opts.CSVDir, buckets, started)
		if err != nil {
			return result, err
		}
		for _, p := range paths {
			logger.Info("csv exported", "path", p)
		}
	}

	if opts.Out != nil {
		WriteReport(opts.Out, buckets, result, uopts, started)
	}
	return result, nil
}
