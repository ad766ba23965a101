package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/romangod6/queuer-site/internal/build"
	"github.com/romangod6/queuer-site/internal/site"
	"github.com/romangod6/queuer-site/internal/utils"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var outDir string
	var noSitemap bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Pre-render every page into the output directory and write sitemap.xml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if outDir != "" {
				cfg.Build.OutDir = outDir
			}

			logger, err := utils.NewBuildLogger(cfg.Build.LogDir, "build")
			if err != nil {
				return err
			}
			defer logger.Close()

			a, err := newApp(cfg, logger)
			if err != nil {
				return err
			}

			store, err := openStore(cfg)
			if err != nil {
				logger.LogError("Build history disabled: %v", err)
			}
			if store != nil {
				defer store.Close()
			}

			builder := build.NewBuilder(a.renderer, build.Options{
				OutDir:  cfg.Build.OutDir,
				BaseURL: cfg.Site.BaseURL,
				Static:  site.StaticFS(),
				Store:   store,
				Logger:  logger,
			})
			if cfg.Sitemap.Enabled && !noSitemap {
				builder.AddHook(a.sitemap)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
			s.Suffix = " Building " + cfg.Build.OutDir
			s.Start()
			result, err := builder.Build(ctx)
			s.Stop()
			if err != nil {
				return err
			}

			logger.LogInfo("Wrote %d pages and %d assets to %s", len(result.Pages), len(result.Assets), cfg.Build.OutDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides build.outdir)")
	cmd.Flags().BoolVar(&noSitemap, "no-sitemap", false, "skip sitemap.xml generation")
	return cmd
}
