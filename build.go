package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/devfolio/portfolio/internal/config"
	"github.com/devfolio/portfolio/internal/watch"
	"github.com/devfolio/portfolio/internal/web"
)

var (
	buildOut   string
	buildWatch bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: "Writes every page as <path>/index.html under --out, together with veille.json\n" +
		"and the static assets. With --watch, rebuilds whenever a content file changes.",
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildOut, "out", "dist", "output directory")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "rebuild when VEILLE_CONTENT or PROJECTS_CONTENT changes")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := build(ctx, cfg, buildOut); err != nil {
		return err
	}
	if !buildWatch {
		return nil
	}
	return watchAndBuild(ctx, cfg, buildOut)
}

func build(ctx context.Context, c config.Config, out string) error {
	s, err := web.New(loadSite(ctx, c))
	if err != nil {
		return err
	}
	stats, err := s.Export(out)
	if err != nil {
		return err
	}
	logger.Info("site exported", "out", out, "pages", stats.Pages, "assets", stats.Assets, "skipped", len(stats.Skipped))
	return nil
}

// watchAndBuild rebuilds on every debounced change until ctx ends. A
// failed rebuild is logged and the previous output is left in place.
func watchAndBuild(ctx context.Context, c config.Config, out string) error {
	var paths []string
	for _, p := range []string{c.ContentPath, c.ProjectsPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("--watch needs VEILLE_CONTENT or PROJECTS_CONTENT to point at a file")
	}

	w, err := watch.New(0)
	if err != nil {
		return err
	}
	defer w.Stop()

	changed := make(chan string, 1)
	err = w.Watch(paths, func(path string) {
		select {
		case changed <- path:
		default:
		}
	}, func(err error) {
		logger.Warn("watch error", "error", err)
	})
	if err != nil {
		return err
	}
	logger.Info("watching content", "paths", paths)

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-changed:
			logger.Info("content changed, rebuilding", "path", path)
			if err := build(ctx, c, out); err != nil {
				logger.Error("rebuild failed", "error", err)
			}
		}
	}
}
