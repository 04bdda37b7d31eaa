package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devfolio/portfolio/internal/config"
	"github.com/devfolio/portfolio/internal/content"
	"github.com/devfolio/portfolio/internal/web"
)

var (
	envFile   string
	logLevel  string
	logFormat string

	cfg    config.Config
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:          "portfolio",
	Short:        "Portfolio site with a technology-watch browser",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(envFile); err != nil {
			return err
		}
		cfg = withLogFlags(cfg, logLevel, logFormat)
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger = cfg.Logger()
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "text or json (overrides LOG_FORMAT)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(veilleCmd)
}

// withLogFlags lets the --log-level and --log-format flags override the
// environment, normalised the same way config.Load treats the variables.
func withLogFlags(c config.Config, level, format string) config.Config {
	if level != "" {
		c.LogLevel = strings.ToLower(level)
	}
	if format != "" {
		c.LogFormat = strings.ToLower(format)
	}
	return c
}

// veilleSource picks where the veille document comes from: a URL, a file,
// or the copy compiled into the binary.
func veilleSource(c config.Config) content.Source {
	switch {
	case c.ContentURL != "":
		return content.HTTP{URL: c.ContentURL}
	case c.ContentPath != "":
		return content.File{Path: c.ContentPath}
	}
	return content.BundledVeille()
}

func projectsSource(c config.Config) content.Source {
	if c.ProjectsPath != "" {
		return content.File{Path: c.ProjectsPath}
	}
	return content.BundledProjects()
}

// loadSite loads all content once. Load failures are carried in the
// options so the site can still render its error states.
func loadSite(ctx context.Context, c config.Config) web.Options {
	opts := web.Options{Profile: content.DefaultProfile, Logger: logger}

	src := veilleSource(c)
	opts.Veille, opts.VeilleErr = content.LoadVeille(ctx, src)
	if opts.VeilleErr == nil {
		logger.Info("veille content loaded", "source", src.String(), "topics", opts.Veille.Catalog.Len())
	}

	psrc := projectsSource(c)
	opts.Projects, opts.ProjectsErr = content.LoadProjects(ctx, psrc)
	if opts.ProjectsErr != nil {
		logger.Error("projects unavailable", "source", psrc.String(), "error", opts.ProjectsErr)
	}
	return opts
}
