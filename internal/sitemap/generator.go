// Package sitemap writes sitemap.xml for the pre-rendered pages once a build has finished.
package sitemap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/romangod6/queuer-site/internal/models"
)

const (
	DefaultOutDir = "dist/client"
	FileName      = "sitemap.xml"

	dateLayout = "2006-01-02"
)

var ErrInvalidBaseURL = errors.New("invalid base url")

// Logger is the subset of utils.BuildLogger the generator reports to.
type Logger interface {
	LogInfo(format string, v ...interface{})
	LogError(format string, v ...interface{})
}

type Options struct {
	BaseURL string
	OutDir  string
	Pages   []models.PageDescriptor
	Now     func() time.Time
	Logger  Logger
}

type Generator struct {
	baseURL string
	outDir  string
	pages   []models.PageDescriptor
	now     func() time.Time
	logger  Logger
}

func New(opts Options) *Generator {
	g := &Generator{
		baseURL: opts.BaseURL,
		outDir:  opts.OutDir,
		pages:   opts.Pages,
		now:     opts.Now,
		logger:  opts.Logger,
	}
	if g.outDir == "" {
		g.outDir = DefaultOutDir
	}
	if g.pages == nil {
		g.pages = models.DefaultPages()
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

func (g *Generator) Name() string {
	return "sitemap"
}

// Path is where Write puts the document.
func (g *Generator) Path() string {
	return filepath.Join(g.outDir, FileName)
}

// Render builds the document for the configured pages at the current time.
func (g *Generator) Render() ([]byte, error) {
	return Generate(g.baseURL, g.pages, g.now())
}

// Write renders and writes <outDir>/sitemap.xml. The directory must already exist.
func (g *Generator) Write() (string, error) {
	data, err := g.Render()
	if err != nil {
		return "", err
	}

	outputPath := g.Path()
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", err
	}
	return outputPath, nil
}

// CloseBundle runs after the build has written all of its assets.
// Failures are logged and never abort the build: the returned error is
// informational and callers must not treat it as fatal.
func (g *Generator) CloseBundle() error {
	outputPath, err := g.Write()
	if err != nil {
		g.logError("Failed to generate sitemap: %v", err)
		return err
	}

	g.logInfo("✓ Generated sitemap.xml at %s", outputPath)
	return nil
}

func (g *Generator) logInfo(format string, v ...interface{}) {
	if g.logger != nil {
		g.logger.LogInfo(format, v...)
	}
}

func (g *Generator) logError(format string, v ...interface{}) {
	if g.logger != nil {
		g.logger.LogError(format, v...)
	}
}

// Generate maps the page descriptors to a sitemaps.org 0.9 document.
// Every entry gets now's UTC date as lastmod.
func Generate(baseURL string, pages []models.PageDescriptor, now time.Time) ([]byte, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	lastMod := now.UTC().Format(dateLayout)

	set := models.NewURLSet()
	set.URLs = make([]models.URL, 0, len(pages))
	for _, page := range pages {
		if err := page.Validate(); err != nil {
			return nil, err
		}
		set.URLs = append(set.URLs, models.URL{
			Loc:        base + page.URL,
			LastMod:    lastMod,
			ChangeFreq: string(page.ChangeFreq),
			Priority:   page.Priority,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding sitemap: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// normalizeBaseURL trims trailing slashes so base + "/route" never doubles them.
func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return trimmed, nil
}
