// Package build pre-renders the site into an output directory and then runs
// the post-build hooks, such as sitemap generation.
package build

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/romangod6/queuer-site/internal/models"
	"github.com/romangod6/queuer-site/internal/site"
	"github.com/romangod6/queuer-site/internal/storage"
)

// Hook runs once after every page and asset has been written.
// Its error is recorded as a warning and never fails the build.
type Hook interface {
	Name() string
	CloseBundle() error
}

type Logger interface {
	LogInfo(format string, v ...interface{})
	LogError(format string, v ...interface{})
	LogDebug(format string, v ...interface{})
}

type Options struct {
	OutDir  string
	BaseURL string
	Locale  string
	Static  fs.FS
	Store   storage.Store
	Logger  Logger
}

type Builder struct {
	renderer *site.Renderer
	opts     Options
	hooks    []Hook
}

type Result struct {
	Record *models.BuildRecord
	Pages  []string
	Assets []string
	// HookErrors maps hook name to the error it reported.
	HookErrors map[string]error
}

func NewBuilder(renderer *site.Renderer, opts Options) *Builder {
	if opts.Locale == "" {
		opts.Locale = renderer.Bundle().DefaultLocale()
	}
	return &Builder{renderer: renderer, opts: opts}
}

func (b *Builder) AddHook(h Hook) {
	b.hooks = append(b.hooks, h)
}

// Build renders the pre-render pages, copies the static assets and runs hooks.
// Page and asset failures abort the build; hook failures do not.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	record := models.NewBuildRecord(b.opts.BaseURL, b.opts.OutDir)
	b.saveRecord(ctx, record, true)

	result, err := b.run(ctx, record)
	record.Finish(err)
	b.saveRecord(ctx, record, false)

	if err != nil {
		b.logError("Build failed: %v", err)
		return nil, err
	}

	b.logInfo("Build %s finished: %d pages, %d assets, %d warnings", record.ID, record.Pages, record.Assets, len(record.Warnings))
	return result, nil
}

func (b *Builder) run(ctx context.Context, record *models.BuildRecord) (*Result, error) {
	result := &Result{
		Record:     record,
		HookErrors: make(map[string]error),
	}

	if err := os.MkdirAll(b.opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, page := range b.renderer.Pages() {
		if !page.Prerender {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		written, err := b.renderPage(page)
		if err != nil {
			return nil, err
		}
		b.logDebug("Rendered %s -> %s", page.Route, written)
		result.Pages = append(result.Pages, written)
	}
	record.Pages = len(result.Pages)

	if b.opts.Static != nil {
		assets, err := copyStatic(b.opts.Static, filepath.Join(b.opts.OutDir, "static"))
		if err != nil {
			return nil, err
		}
		result.Assets = assets
		record.Assets = len(assets)
	}

	for _, hook := range b.hooks {
		if err := hook.CloseBundle(); err != nil {
			result.HookErrors[hook.Name()] = err
			record.Warnings = append(record.Warnings, fmt.Sprintf("%s: %v", hook.Name(), err))
		}
	}

	return result, nil
}

func (b *Builder) renderPage(page site.Page) (string, error) {
	var buf bytes.Buffer
	if err := b.renderer.Render(&buf, page.Route, b.opts.Locale); err != nil {
		return "", err
	}

	target := filepath.Join(b.opts.OutDir, filepath.FromSlash(page.OutputPath()))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", page.Route, err)
	}
	if err := os.WriteFile(target, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", page.Route, err)
	}
	return target, nil
}

func copyStatic(src fs.FS, dst string) ([]string, error) {
	var written []string
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return err
		}
		written = append(written, target)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to copy static assets: %w", err)
	}
	return written, nil
}

// saveRecord is best effort: build history must not decide the build outcome.
func (b *Builder) saveRecord(ctx context.Context, record *models.BuildRecord, create bool) {
	if b.opts.Store == nil {
		return
	}

	var err error
	if create {
		err = b.opts.Store.CreateBuild(ctx, record)
	} else {
		err = b.opts.Store.UpdateBuild(context.WithoutCancel(ctx), record)
	}
	if err != nil {
		b.logError("Failed to save build record %s: %v", record.ID, err)
	}
}

func (b *Builder) logInfo(format string, v ...interface{}) {
	if b.opts.Logger != nil {
		b.opts.Logger.LogInfo(format, v...)
	}
}

func (b *Builder) logError(format string, v ...interface{}) {
	if b.opts.Logger != nil {
		b.opts.Logger.LogError(format, v...)
	}
}

func (b *Builder) logDebug(format string, v ...interface{}) {
	if b.opts.Logger != nil {
		b.opts.Logger.LogDebug(format, v...)
	}
}
