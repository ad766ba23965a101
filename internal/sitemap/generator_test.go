package sitemap

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/romangod6/queuer-site/internal/models"
	"github.com/romangod6/queuer-site/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 19, 23, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
}

func parse(t *testing.T, data []byte) models.URLSet {
	t.Helper()
	var set models.URLSet
	require.NoError(t, xml.Unmarshal(data, &set))
	return set
}

func TestGenerateLandingPage(t *testing.T) {
	data, err := Generate("https://queuer.com", models.DefaultPages(), fixedNow())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)))

	set := parse(t, data)
	assert.Equal(t, models.SitemapNamespace, set.XMLName.Space)
	assert.Equal(t, "urlset", set.XMLName.Local)
	require.Len(t, set.URLs, 1)

	u := set.URLs[0]
	assert.Equal(t, "https://queuer.com/", u.Loc)
	assert.Equal(t, "weekly", u.ChangeFreq)
	assert.Equal(t, "1.0", u.Priority)
	// 23:30 at UTC+2 is still the 19th in UTC
	assert.Equal(t, "2026-10-19", u.LastMod)

	out := string(data)
	assert.Contains(t, out, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, out, "<loc>https://queuer.com/</loc>")
	assert.Contains(t, out, "<changefreq>weekly</changefreq>")
	assert.Contains(t, out, "<priority>1.0</priority>")
}

func TestGenerateUsesUTCDate(t *testing.T) {
	late := time.Date(2026, 10, 19, 1, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	data, err := Generate("https://queuer.com", models.DefaultPages(), late)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", parse(t, data).URLs[0].LastMod)
}

func TestGenerateSameDayIsStable(t *testing.T) {
	morning := time.Date(2026, 10, 19, 0, 0, 1, 0, time.UTC)
	evening := time.Date(2026, 10, 19, 23, 59, 59, 0, time.UTC)

	a, err := Generate("https://queuer.com", models.DefaultPages(), morning)
	require.NoError(t, err)
	b, err := Generate("https://queuer.com", models.DefaultPages(), evening)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGenerateJoinsLocWithSingleSlash(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"https://queuer.com", "/", "https://queuer.com/"},
		{"https://queuer.com/", "/", "https://queuer.com/"},
		{"https://queuer.com//", "/pricing", "https://queuer.com/pricing"},
		{"https://queuer.com", "/about", "https://queuer.com/about"},
		{"https://queuer.com/it", "/about", "https://queuer.com/it/about"},
	}

	for _, tt := range tests {
		t.Run(tt.base+tt.path, func(t *testing.T) {
			pages := []models.PageDescriptor{{URL: tt.path, Priority: "0.8", ChangeFreq: models.ChangeMonthly}}
			data, err := Generate(tt.base, pages, fixedNow())
			require.NoError(t, err)
			assert.Equal(t, tt.want, parse(t, data).URLs[0].Loc)
		})
	}

	pages := []models.PageDescriptor{{URL: "//about", Priority: "0.8", ChangeFreq: models.ChangeMonthly}}
	data, err := Generate("https://queuer.com", pages, fixedNow())
	assert.ErrorIs(t, err, models.ErrInvalidPageURL)
	assert.Nil(t, data)
}

func TestGeneratePreservesCardinalityAndOrder(t *testing.T) {
	pages := []models.PageDescriptor{
		{URL: "/", Priority: "1.0", ChangeFreq: models.ChangeWeekly},
		{URL: "/about", Priority: "0.8", ChangeFreq: models.ChangeMonthly},
		{URL: "/pricing", Priority: "0.9", ChangeFreq: models.ChangeWeekly},
	}

	data, err := Generate("https://queuer.com", pages, fixedNow())
	require.NoError(t, err)

	set := parse(t, data)
	require.Len(t, set.URLs, len(pages))
	for i, page := range pages {
		assert.Equal(t, "https://queuer.com"+page.URL, set.URLs[i].Loc)
		assert.Equal(t, page.Priority, set.URLs[i].Priority)
	}
	assert.Equal(t, len(pages), strings.Count(string(data), "<url>"))
}

func TestGenerateEmptyList(t *testing.T) {
	data, err := Generate("https://queuer.com", []models.PageDescriptor{}, fixedNow())
	require.NoError(t, err)
	assert.Empty(t, parse(t, data).URLs)
}

func TestGenerateEscapesLoc(t *testing.T) {
	pages := []models.PageDescriptor{{URL: "/search?q=a&b", Priority: "0.1", ChangeFreq: models.ChangeNever}}
	data, err := Generate("https://queuer.com", pages, fixedNow())
	require.NoError(t, err)

	assert.Contains(t, string(data), "a&amp;b")
	assert.Equal(t, "https://queuer.com/search?q=a&b", parse(t, data).URLs[0].Loc)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	_, err := Generate("queuer.com", models.DefaultPages(), fixedNow())
	assert.ErrorIs(t, err, ErrInvalidBaseURL)

	_, err = Generate("", models.DefaultPages(), fixedNow())
	assert.ErrorIs(t, err, ErrInvalidBaseURL)

	bad := []models.PageDescriptor{{URL: "/", Priority: "2", ChangeFreq: models.ChangeWeekly}}
	_, err = Generate("https://queuer.com", bad, fixedNow())
	assert.ErrorIs(t, err, models.ErrInvalidPriority)

	for _, priority := range []string{"NaN", "1e-1"} {
		bad = []models.PageDescriptor{{URL: "/", Priority: priority, ChangeFreq: models.ChangeWeekly}}
		data, err := Generate("https://queuer.com", bad, fixedNow())
		assert.ErrorIs(t, err, models.ErrInvalidPriority, priority)
		assert.NotContains(t, string(data), "<priority>"+priority)
	}

	bad = []models.PageDescriptor{{URL: "/", Priority: "1.0", ChangeFreq: "Weekly"}}
	data, err := Generate("https://queuer.com", bad, fixedNow())
	assert.ErrorIs(t, err, models.ErrInvalidChangeFreq)
	assert.NotContains(t, string(data), "<changefreq>Weekly")
}

func TestCloseBundleWritesFile(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer

	g := New(Options{
		BaseURL: "https://queuer.com",
		OutDir:  dir,
		Now:     fixedNow,
		Logger:  utils.NewConsoleLogger(&logs, "sitemap"),
	})

	require.NoError(t, g.CloseBundle())

	data, err := os.ReadFile(filepath.Join(dir, "sitemap.xml"))
	require.NoError(t, err)
	set := parse(t, data)
	require.Len(t, set.URLs, 1)
	assert.Equal(t, "https://queuer.com/", set.URLs[0].Loc)

	assert.Contains(t, logs.String(), "Generated sitemap.xml at "+filepath.Join(dir, "sitemap.xml"))
}

func TestCloseBundleMissingDirectoryIsLogged(t *testing.T) {
	var logs bytes.Buffer
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")

	g := New(Options{
		BaseURL: "https://queuer.com",
		OutDir:  missing,
		Logger:  utils.NewConsoleLogger(&logs, "sitemap"),
	})

	var err error
	assert.NotPanics(t, func() { err = g.CloseBundle() })
	assert.Error(t, err)
	assert.Contains(t, logs.String(), "Failed to generate sitemap")

	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewDefaults(t *testing.T) {
	g := New(Options{BaseURL: "https://queuer.com"})
	assert.Equal(t, filepath.Join("dist", "client", "sitemap.xml"), g.Path())
	assert.Equal(t, models.DefaultPages(), g.pages)
	assert.Equal(t, "sitemap", g.Name())

	// no logger configured must not panic
	g = New(Options{BaseURL: "https://queuer.com", OutDir: filepath.Join(t.TempDir(), "missing")})
	assert.NotPanics(t, func() { _ = g.CloseBundle() })
}
