package verify

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/romangod6/queuer-site/internal/models"
	"github.com/romangod6/queuer-site/internal/site"
	"github.com/romangod6/queuer-site/internal/sitemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodPage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>QueueR - Home</title>
<meta name="description" content="Skip the line.">
<meta name="keywords" content="queue, nightlife , ,app">
<link rel="canonical" href="https://queuer.com/">
<meta property="og:title" content="QueueR - Home">
<meta property="og:description" content="Skip the line.">
<meta property="og:image" content="https://queuer.com/logo.png">
<meta property="twitter:card" content="summary_large_image">
<style>.hidden { display: none }</style>
</head>
<body>
<!-- comment words -->
<h1>  Aerial   data </h1>
<p>Three more words</p>
<script>var ignored = "lots of words here";</script>
</body>
</html>`

func TestParseHead(t *testing.T) {
	head, err := ParseHead(strings.NewReader(goodPage))
	require.NoError(t, err)

	assert.Equal(t, "en", head.Lang)
	assert.Equal(t, "QueueR - Home", head.Title)
	assert.Equal(t, "Skip the line.", head.Description)
	assert.Equal(t, []string{"queue", "nightlife", "app"}, head.Keywords)
	assert.Equal(t, "https://queuer.com/", head.Canonical)
	assert.Equal(t, "https://queuer.com/logo.png", head.OpenGraph["image"])
	assert.Equal(t, "summary_large_image", head.Twitter["card"])
	assert.Equal(t, "Aerial data", head.Headline)
	assert.Equal(t, 5, head.WordCount)
}

func TestParseHeadTwitterByName(t *testing.T) {
	head, err := ParseHead(strings.NewReader(`<html><head><meta name="twitter:card" content="summary"></head></html>`))
	require.NoError(t, err)
	assert.Equal(t, "summary", head.Twitter["card"])
}

func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(goodPage))
	})
	mux.HandleFunc("/bare", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Bare</title></head><body></body></html>`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCheckReportsPerLoc(t *testing.T) {
	server := newSiteServer(t)

	set := &models.URLSet{URLs: []models.URL{
		{Loc: "https://queuer.com/"},
		{Loc: "https://queuer.com/bare"},
		{Loc: "https://queuer.com/missing"},
		{Loc: "https://queuer.com/"},
	}}

	checker := NewChecker(&Config{Origin: "https://queuer.com", Target: server.URL}, nil)
	report, err := checker.Check(context.Background(), set)
	require.NoError(t, err)
	require.Len(t, report.Pages, 4)

	home := report.Pages[0]
	assert.True(t, home.OK(), "%v", home.Problems)
	assert.Equal(t, http.StatusOK, home.StatusCode)
	assert.Equal(t, server.URL+"/", home.FetchedURL)

	bare := report.Pages[1]
	assert.False(t, bare.OK())
	assert.Contains(t, bare.Problems, "missing meta description")
	assert.Contains(t, bare.Problems, "missing og:image")
	assert.Contains(t, bare.Problems, "missing <h1>")

	missing := report.Pages[2]
	assert.False(t, missing.OK())
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	assert.Equal(t, []string{"duplicate loc in sitemap"}, report.Pages[3].Problems)
	assert.Len(t, report.Failed(), 3)
}

func TestCheckCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	set := &models.URLSet{URLs: []models.URL{{Loc: "https://queuer.com/"}}}
	_, err := NewChecker(&Config{}, nil).Check(ctx, set)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRewrite(t *testing.T) {
	c := NewChecker(&Config{Origin: "https://queuer.com/", Target: "http://127.0.0.1:8080/"}, nil)
	assert.Equal(t, "http://127.0.0.1:8080/", c.rewrite("https://queuer.com/"))
	assert.Equal(t, "http://127.0.0.1:8080/about", c.rewrite("https://queuer.com/about"))
	assert.Equal(t, "https://other.com/", c.rewrite("https://other.com/"))

	plain := NewChecker(&Config{}, nil)
	assert.Equal(t, "https://queuer.com/", plain.rewrite("https://queuer.com/"))
}

func TestLoadSitemapFromFileAndURL(t *testing.T) {
	data, err := sitemap.Generate("https://queuer.com", models.DefaultPages(), time.Now())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sitemap.xml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	set, err := LoadSitemap(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, set.URLs, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer server.Close()

	set, err = LoadSitemap(context.Background(), server.URL+"/sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, "https://queuer.com/", set.URLs[0].Loc)

	_, err = LoadSitemap(context.Background(), filepath.Join(t.TempDir(), "nope.xml"))
	assert.Error(t, err)

	wrong := filepath.Join(t.TempDir(), "wrong.xml")
	require.NoError(t, os.WriteFile(wrong, []byte(`<urlset><url><loc>x</loc></url></urlset>`), 0644))
	_, err = LoadSitemap(context.Background(), wrong)
	assert.Error(t, err)
}

// The full loop: render the landing page, serve the directory, verify it against its sitemap.
func TestServeDirVerifiesRenderedSite(t *testing.T) {
	dir := t.TempDir()

	bundle, err := site.LoadBundle("en")
	require.NoError(t, err)
	renderer, err := site.NewRenderer(bundle, site.DefaultMeta("https://queuer.com"), site.LandingPage())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, "/", "en"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), buf.Bytes(), 0644))

	g := sitemap.New(sitemap.Options{BaseURL: "https://queuer.com", OutDir: dir, Pages: renderer.SitemapPages()})
	require.NoError(t, g.CloseBundle())

	base, stop, err := ServeDir(dir)
	require.NoError(t, err)
	defer stop()

	set, err := LoadSitemap(context.Background(), filepath.Join(dir, "sitemap.xml"))
	require.NoError(t, err)

	report, err := NewChecker(&Config{Origin: "https://queuer.com", Target: base}, nil).Check(context.Background(), set)
	require.NoError(t, err)
	require.Len(t, report.Pages, 1)
	assert.True(t, report.Pages[0].OK(), "%v", report.Pages[0].Problems)
	assert.Greater(t, report.Pages[0].Head.WordCount, 50)

	_, _, err = ServeDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
