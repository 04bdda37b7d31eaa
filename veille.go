package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/devfolio/portfolio/internal/ingest"
)

var veilleCmd = &cobra.Command{
	Use:   "veille",
	Short: "Maintain the veille content document",
}

var fetchOpts struct {
	config           string
	content          string
	history          string
	csvDir           string
	versionDir       string
	topics           []string
	dryRun           bool
	apply            bool
	exportCSV        bool
	maxArticles      int
	maxAge           int
	historyRetention int
	verbose          bool
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Add new articles from the configured RSS feeds",
	Long: "Fetches every feed of --config, keeps recent entries that match a topic's\n" +
		"keywords and have not been seen before, and writes a dated copy of the\n" +
		"content document into the versions directory. --apply also overwrites the\n" +
		"document, keeping the previous one as <file>.bak.",
	Example: "  portfolio veille fetch --dry-run\n" +
		"  portfolio veille fetch --topic MFA --topic ZTNA --max-articles 5\n" +
		"  portfolio veille fetch --apply --export-csv",
	RunE: runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.StringVar(&fetchOpts.config, "config", "feeds.yaml", "feed and topic configuration (YAML or JSON)")
	f.StringVar(&fetchOpts.content, "content", "", "content document to update (default VEILLE_CONTENT)")
	f.StringVar(&fetchOpts.history, "history", "veille_history.db", "SQLite file remembering ingested links")
	f.StringVar(&fetchOpts.csvDir, "csv-dir", "exports", "directory for --export-csv")
	f.StringVar(&fetchOpts.versionDir, "versions", "", "directory for dated copies (default: versions/ next to the document)")
	f.StringSliceVar(&fetchOpts.topics, "topic", nil, "only these topics (repeatable)")
	f.BoolVar(&fetchOpts.dryRun, "dry-run", false, "report without writing anything")
	f.BoolVar(&fetchOpts.apply, "apply", false, "overwrite the content document after backing it up")
	f.BoolVar(&fetchOpts.exportCSV, "export-csv", false, "also write one CSV per topic")
	f.IntVar(&fetchOpts.maxArticles, "max-articles", 0, "new articles per topic, 0 for no limit")
	f.IntVar(&fetchOpts.maxAge, "max-age", -1, "maximum article age in days (default from config)")
	f.IntVar(&fetchOpts.historyRetention, "history-retention", 0, "forget links ingested more than this many days ago, 0 keeps them")
	f.BoolVarP(&fetchOpts.verbose, "verbose", "v", false, "debug logging")

	veilleCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	path := fetchOpts.content
	if path == "" {
		path = cfg.ContentPath
	}
	if path == "" {
		return fmt.Errorf("no content document: pass --content or set VEILLE_CONTENT")
	}

	log := logger
	if fetchOpts.verbose {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	_, err := ingest.Run(cmd.Context(), ingest.RunOptions{
		ConfigPath:           fetchOpts.config,
		ContentPath:          path,
		HistoryPath:          fetchOpts.history,
		CSVDir:               fetchOpts.csvDir,
		VersionDir:           fetchOpts.versionDir,
		Topics:               fetchOpts.topics,
		DryRun:               fetchOpts.dryRun,
		Apply:                fetchOpts.apply,
		ExportCSV:            fetchOpts.exportCSV,
		MaxArticles:          fetchOpts.maxArticles,
		MaxAgeDays:           fetchOpts.maxAge,
		HistoryRetentionDays: fetchOpts.historyRetention,
		Logger:               log,
		Out:                  cmd.OutOrStdout(),
	})
	return err
}
