package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/romangod6/queuer-site/internal/models"
	"github.com/spf13/viper"
)

type Config struct {
	Site struct {
		BaseURL       string
		Title         string
		Description   string
		DefaultLocale string
		Phone         string
	}
	Build struct {
		OutDir string
		LogDir string
	}
	Server struct {
		Port int
	}
	Database struct {
		Driver string
		URL    string
	}
	Sitemap struct {
		Enabled bool
		Pages   []models.PageDescriptor
	}
	Verify struct {
		UserAgent   string
		Parallelism int
		Timeout     string
	}
}

// LoadConfig reads config.yaml from . or ./config. A missing file is fine:
// defaults and SITE_* environment variables still apply.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("")
}

// LoadConfigFrom reads the given file, or searches the default paths when path is empty.
func LoadConfigFrom(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Default values
	v.SetDefault("site.baseurl", "https://queuer.com")
	v.SetDefault("site.title", "QueueR - Home")
	v.SetDefault("site.description", "Transform physical nightclub queues into seamless digital experiences. No more waiting in line, just scan, join, and enjoy.")
	v.SetDefault("site.defaultlocale", "en")
	v.SetDefault("site.phone", "+1234567890")
	v.SetDefault("build.outdir", "dist/client")
	v.SetDefault("build.logdir", "logs")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "none")
	v.SetDefault("database.url", "builds.db")
	v.SetDefault("sitemap.enabled", true)
	v.SetDefault("verify.useragent", "QueueR Site Verifier v1.0")
	v.SetDefault("verify.parallelism", 2)
	v.SetDefault("verify.timeout", "30s")

	v.SetEnvPrefix("SITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// SitemapPages returns the configured sitemap entries, or nil when none are
// configured so the caller can fall back to the registered pages.
func (c *Config) SitemapPages() ([]models.PageDescriptor, error) {
	if len(c.Sitemap.Pages) == 0 {
		return nil, nil
	}
	for _, p := range c.Sitemap.Pages {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return c.Sitemap.Pages, nil
}
