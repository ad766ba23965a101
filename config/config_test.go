package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/romangod6/queuer-site/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://queuer.com", cfg.Site.BaseURL)
	assert.Equal(t, "en", cfg.Site.DefaultLocale)
	assert.Equal(t, "dist/client", cfg.Build.OutDir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "none", cfg.Database.Driver)
	assert.True(t, cfg.Sitemap.Enabled)

	pages, err := cfg.SitemapPages()
	require.NoError(t, err)
	assert.Nil(t, pages)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
site:
  baseurl: https://staging.queuer.com
build:
  outdir: out/public
server:
  port: 9090
sitemap:
  pages:
    - url: /
      priority: "1.0"
      changefreq: weekly
    - url: /pricing
      priority: "0.9"
      changefreq: monthly
`), 0644))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.queuer.com", cfg.Site.BaseURL)
	assert.Equal(t, "out/public", cfg.Build.OutDir)
	assert.Equal(t, 9090, cfg.Server.Port)

	pages, err := cfg.SitemapPages()
	require.NoError(t, err)
	assert.Equal(t, []models.PageDescriptor{
		{URL: "/", Priority: "1.0", ChangeFreq: models.ChangeWeekly},
		{URL: "/pricing", Priority: "0.9", ChangeFreq: models.ChangeMonthly},
	}, pages)
}

func TestLoadConfigInvalidSitemapPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sitemap:
  pages:
    - url: /
      priority: "3"
      changefreq: weekly
`), 0644))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	_, err = cfg.SitemapPages()
	assert.ErrorIs(t, err, models.ErrInvalidPriority)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SITE_SITE_BASEURL", "https://env.queuer.com")
	t.Setenv("SITE_SERVER_PORT", "7070")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://env.queuer.com", cfg.Site.BaseURL)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
