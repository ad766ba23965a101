package site

import (
	"strings"

	"github.com/romangod6/queuer-site/internal/models"
)

// Page is a routable page and its rendering options.
type Page struct {
	Route       string
	Template    string
	Title       string
	Description string

	// Prerender writes the page to the build output; SSR serves it on request.
	Prerender bool
	SSR       bool

	Priority   string
	ChangeFreq models.ChangeFreq
}

// Descriptor is the page as listed in sitemap.xml.
func (p Page) Descriptor() models.PageDescriptor {
	return models.PageDescriptor{
		URL:        p.Route,
		Priority:   p.Priority,
		ChangeFreq: p.ChangeFreq,
	}
}

// OutputPath is the page's file under the build output, slash separated.
func (p Page) OutputPath() string {
	trimmed := strings.Trim(p.Route, "/")
	if trimmed == "" {
		return "index.html"
	}
	return trimmed + "/index.html"
}

func LandingPage() Page {
	return Page{
		Route:       "/",
		Template:    "index.html",
		Title:       "QueueR - Home",
		Description: "Transform physical nightclub queues into seamless digital experiences. No more waiting in line, just scan, join, and enjoy.",
		Prerender:   true,
		SSR:         true,
		Priority:    "1.0",
		ChangeFreq:  models.ChangeWeekly,
	}
}

// Meta is the site-wide head information shared by every page.
type Meta struct {
	BaseURL  string
	SiteName string
	Author   string
	Keywords string
	Image    string
	Phone    string
}

func DefaultMeta(baseURL string) Meta {
	return Meta{
		BaseURL:  baseURL,
		SiteName: "QueueR",
		Author:   "QueueR Team",
		Keywords: "nightclub queue management, digital queue, virtual line, bar queue app, nightlife app, skip the line, QueueR",
		Image:    "/static/images/logo/horizontal-full.svg",
		Phone:    "+1234567890",
	}
}
