package main

import (
	"fmt"

	"github.com/romangod6/queuer-site/config"
	"github.com/romangod6/queuer-site/internal/site"
	"github.com/romangod6/queuer-site/internal/sitemap"
	"github.com/romangod6/queuer-site/internal/storage"
)

// app is everything the subcommands share.
type app struct {
	cfg      *config.Config
	renderer *site.Renderer
	sitemap  *sitemap.Generator
}

func newApp(cfg *config.Config, logger sitemap.Logger) (*app, error) {
	bundle, err := site.LoadBundle(cfg.Site.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	landing := site.LandingPage()
	landing.Title = cfg.Site.Title
	landing.Description = cfg.Site.Description

	meta := site.DefaultMeta(cfg.Site.BaseURL)
	meta.Phone = cfg.Site.Phone

	renderer, err := site.NewRenderer(bundle, meta, landing)
	if err != nil {
		return nil, err
	}

	pages, err := cfg.SitemapPages()
	if err != nil {
		return nil, fmt.Errorf("invalid sitemap pages: %w", err)
	}
	if pages == nil {
		pages = renderer.SitemapPages()
	}

	generator := sitemap.New(sitemap.Options{
		BaseURL: cfg.Site.BaseURL,
		OutDir:  cfg.Build.OutDir,
		Pages:   pages,
		Logger:  logger,
	})

	return &app{cfg: cfg, renderer: renderer, sitemap: generator}, nil
}

// openStore returns nil when no database driver is configured.
func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Database.Driver == "" || cfg.Database.Driver == "none" {
		return nil, nil
	}

	store, err := storage.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := store.Initialize(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}
	return store, nil
}
