package verify

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocolly/colly/v2"
	"github.com/romangod6/queuer-site/internal/models"
)

const DefaultUserAgent = "QueueR Site Verifier v1.0"

type Logger interface {
	LogInfo(format string, v ...interface{})
	LogError(format string, v ...interface{})
}

type Config struct {
	UserAgent   string
	Parallelism int
	Timeout     time.Duration
	// Origin is replaced by Target in every loc, so a sitemap for the public
	// origin can be checked against a local server.
	Origin string
	Target string
	// RequiredOpenGraph lists og: properties every page must carry.
	RequiredOpenGraph []string
}

type PageReport struct {
	Loc        string    `json:"loc"`
	FetchedURL string    `json:"fetchedUrl"`
	StatusCode int       `json:"statusCode"`
	Head       *PageHead `json:"head,omitempty"`
	Problems   []string  `json:"problems,omitempty"`
}

func (p PageReport) OK() bool {
	return len(p.Problems) == 0
}

type Report struct {
	Pages []PageReport `json:"pages"`
}

func (r *Report) Failed() []PageReport {
	var failed []PageReport
	for _, p := range r.Pages {
		if !p.OK() {
			failed = append(failed, p)
		}
	}
	return failed
}

type Checker struct {
	config *Config
	logger Logger
}

func NewChecker(config *Config, logger Logger) *Checker {
	cfg := *config
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequiredOpenGraph == nil {
		cfg.RequiredOpenGraph = []string{"title", "description", "image"}
	}
	return &Checker{config: &cfg, logger: logger}
}

// Check fetches every loc in the sitemap and inspects the returned page.
// Reports come back in sitemap order.
func (c *Checker) Check(ctx context.Context, set *models.URLSet) (*Report, error) {
	collector := colly.NewCollector(
		colly.UserAgent(c.config.UserAgent),
		colly.Async(true),
	)
	collector.SetRequestTimeout(c.config.Timeout)

	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: c.config.Parallelism,
	}); err != nil {
		return nil, err
	}

	var mutex sync.Mutex
	reports := make(map[string]*PageReport, len(set.URLs))
	record := func(report *PageReport) {
		mutex.Lock()
		defer mutex.Unlock()
		reports[report.Loc] = report
	}

	collector.OnResponse(func(r *colly.Response) {
		loc := r.Ctx.Get("loc")
		c.logInfo("Fetched %s (%d)", r.Request.URL, r.StatusCode)
		record(c.evaluate(loc, r.Request.URL.String(), r.StatusCode, r.Body))
	})

	collector.OnError(func(r *colly.Response, err error) {
		loc := r.Ctx.Get("loc")
		c.logError("Error fetching %s: %v", r.Request.URL, err)
		record(&PageReport{
			Loc:        loc,
			FetchedURL: r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Problems:   []string{fmt.Sprintf("fetch failed: %v", err)},
		})
	})

	requested := make(map[string]bool, len(set.URLs))
	for idx, u := range set.URLs {
		if err := ctx.Err(); err != nil {
			collector.Wait()
			return nil, err
		}
		if requested[u.Loc] {
			continue
		}
		requested[u.Loc] = true

		target := c.rewrite(u.Loc)
		c.logInfo("Checking URL %d/%d: %s", idx+1, len(set.URLs), target)

		reqCtx := colly.NewContext()
		reqCtx.Put("loc", u.Loc)
		if err := collector.Request(http.MethodGet, target, nil, reqCtx, nil); err != nil {
			record(&PageReport{
				Loc:        u.Loc,
				FetchedURL: target,
				Problems:   []string{fmt.Sprintf("request not sent: %v", err)},
			})
		}
	}

	collector.Wait()

	report := &Report{Pages: make([]PageReport, 0, len(set.URLs))}
	seen := make(map[string]bool, len(set.URLs))
	for _, u := range set.URLs {
		if seen[u.Loc] {
			report.Pages = append(report.Pages, PageReport{Loc: u.Loc, Problems: []string{"duplicate loc in sitemap"}})
			continue
		}
		seen[u.Loc] = true

		if r, ok := reports[u.Loc]; ok {
			report.Pages = append(report.Pages, *r)
		} else {
			report.Pages = append(report.Pages, PageReport{Loc: u.Loc, Problems: []string{"no response"}})
		}
	}

	return report, nil
}

func (c *Checker) evaluate(loc, fetched string, status int, body []byte) *PageReport {
	report := &PageReport{
		Loc:        loc,
		FetchedURL: fetched,
		StatusCode: status,
	}

	if status != http.StatusOK {
		report.Problems = append(report.Problems, fmt.Sprintf("unexpected status %d", status))
	}

	head, err := ParseHead(bytes.NewReader(body))
	if err != nil {
		report.Problems = append(report.Problems, err.Error())
		return report
	}
	report.Head = head

	if head.Title == "" {
		report.Problems = append(report.Problems, "missing <title>")
	}
	if head.Description == "" {
		report.Problems = append(report.Problems, "missing meta description")
	}
	for _, prop := range c.config.RequiredOpenGraph {
		if head.OpenGraph[prop] == "" {
			report.Problems = append(report.Problems, "missing og:"+prop)
		}
	}
	if head.Twitter["card"] == "" {
		report.Problems = append(report.Problems, "missing twitter:card")
	}
	if head.Canonical != "" && head.Canonical != loc {
		report.Problems = append(report.Problems, fmt.Sprintf("canonical %s does not match loc", head.Canonical))
	}
	if head.Headline == "" {
		report.Problems = append(report.Problems, "missing <h1>")
	}

	return report
}

func (c *Checker) rewrite(loc string) string {
	origin := strings.TrimRight(c.config.Origin, "/")
	if origin == "" || c.config.Target == "" || !strings.HasPrefix(loc, origin) {
		return loc
	}
	return strings.TrimRight(c.config.Target, "/") + strings.TrimPrefix(loc, origin)
}

func (c *Checker) logInfo(format string, v ...interface{}) {
	if c.logger != nil {
		c.logger.LogInfo(format, v...)
	}
}

func (c *Checker) logError(format string, v ...interface{}) {
	if c.logger != nil {
		c.logger.LogError(format, v...)
	}
}

// LoadSitemap reads a sitemap from an http(s) URL or a local file.
func LoadSitemap(ctx context.Context, source string) (*models.URLSet, error) {
	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetching %s: unexpected status %d", source, resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		body, err = os.ReadFile(source)
		if err != nil {
			return nil, err
		}
	}

	var set models.URLSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("error parsing sitemap %s: %w", source, err)
	}
	if set.XMLName.Space != models.SitemapNamespace {
		return nil, fmt.Errorf("sitemap %s: unexpected namespace %q", source, set.XMLName.Space)
	}

	return &set, nil
}

// ServeDir serves a build output directory on a random local port.
// The returned stop function shuts the server down.
func ServeDir(dir string) (string, func(), error) {
	if _, err := os.Stat(dir); err != nil {
		return "", nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.StaticFS("/", gin.Dir(dir, false))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go server.Serve(listener)

	return "http://" + listener.Addr().String(), func() { server.Close() }, nil
}
