package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/romangod6/queuer-site/internal/sitemap"
	"github.com/romangod6/queuer-site/internal/utils"
	"github.com/romangod6/queuer-site/internal/verify"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var dir, target, sitemapSource string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Crawl every sitemap entry and check the page's SEO tags",
		Long: "Crawl every sitemap entry and check the page's SEO tags.\n\n" +
			"By default the build output directory is served on a local port and checked.\n" +
			"Use --target to check a running server instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if dir == "" {
				dir = cfg.Build.OutDir
			}

			logger := utils.NewConsoleLogger(os.Stdout, "verify")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if sitemapSource == "" {
				if target != "" {
					sitemapSource = strings.TrimRight(target, "/") + "/" + sitemap.FileName
				} else {
					sitemapSource = filepath.Join(dir, sitemap.FileName)
				}
			}

			if target == "" {
				base, stopServer, err := verify.ServeDir(dir)
				if err != nil {
					return fmt.Errorf("failed to serve %s: %w", dir, err)
				}
				defer stopServer()
				target = base
			}

			set, err := verify.LoadSitemap(ctx, sitemapSource)
			if err != nil {
				return err
			}

			timeout, err := time.ParseDuration(cfg.Verify.Timeout)
			if err != nil {
				timeout = 30 * time.Second
			}

			checker := verify.NewChecker(&verify.Config{
				UserAgent:   cfg.Verify.UserAgent,
				Parallelism: cfg.Verify.Parallelism,
				Timeout:     timeout,
				Origin:      cfg.Site.BaseURL,
				Target:      target,
			}, logger)

			report, err := checker.Check(ctx, set)
			if err != nil {
				return err
			}

			for _, page := range report.Pages {
				if page.OK() {
					logger.LogInfo("✓ %s", page.Loc)
					continue
				}
				for _, problem := range page.Problems {
					logger.LogError("✗ %s: %s", page.Loc, problem)
				}
			}

			if failed := report.Failed(); len(failed) > 0 {
				return fmt.Errorf("%d of %d pages failed verification", len(failed), len(report.Pages))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "build output directory to serve and check (default build.outdir)")
	cmd.Flags().StringVar(&target, "target", "", "base URL of a running server to check instead of --dir")
	cmd.Flags().StringVar(&sitemapSource, "sitemap", "", "sitemap file or URL (default <dir>/sitemap.xml or <target>/sitemap.xml)")
	return cmd
}
