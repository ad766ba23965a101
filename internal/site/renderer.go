package site

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"
	"time"

	"github.com/romangod6/queuer-site/internal/i18n"
	"github.com/romangod6/queuer-site/internal/models"
)

var ErrPageNotFound = errors.New("page not found")

type Renderer struct {
	bundle    *i18n.Bundle
	meta      Meta
	pages     []Page
	templates map[string]*template.Template
}

type viewData struct {
	Locale    string
	Page      Page
	Meta      Meta
	Canonical string
	Image     string
	Year      int
	Landing   landing
}

// NewRenderer parses the layout, partials and page template for every page up front.
func NewRenderer(bundle *i18n.Bundle, meta Meta, pages ...Page) (*Renderer, error) {
	r := &Renderer{
		bundle:    bundle,
		meta:      meta,
		templates: make(map[string]*template.Template),
	}

	for _, p := range pages {
		if _, exists := r.templates[p.Route]; exists {
			return nil, fmt.Errorf("duplicate page route %s", p.Route)
		}

		tmpl, err := template.New("layout").Funcs(template.FuncMap{
			// replaced per render with the requested locale
			"t":     func(key string) string { return key },
			"asset": assetPath,
		}).ParseFS(content,
			"templates/layout.html",
			"templates/partials/*.html",
			path.Join("templates/pages", p.Template),
		)
		if err != nil {
			return nil, fmt.Errorf("error parsing templates for %s: %w", p.Route, err)
		}

		r.templates[p.Route] = tmpl
		r.pages = append(r.pages, p)
	}

	return r, nil
}

func (r *Renderer) Pages() []Page {
	return append([]Page(nil), r.pages...)
}

func (r *Renderer) Page(route string) (Page, bool) {
	for _, p := range r.pages {
		if p.Route == route {
			return p, true
		}
	}
	return Page{}, false
}

func (r *Renderer) Bundle() *i18n.Bundle {
	return r.bundle
}

// SitemapPages lists the descriptors of pre-rendered pages in registration order.
func (r *Renderer) SitemapPages() []models.PageDescriptor {
	var descriptors []models.PageDescriptor
	for _, p := range r.pages {
		if p.Prerender {
			descriptors = append(descriptors, p.Descriptor())
		}
	}
	return descriptors
}

// Render writes the full HTML document for route in locale. Unknown locales
// fall back to the bundle's default.
func (r *Renderer) Render(w io.Writer, route, locale string) error {
	page, ok := r.Page(route)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPageNotFound, route)
	}

	if !r.bundle.Has(locale) {
		locale = r.bundle.DefaultLocale()
	}

	tmpl, err := r.templates[route].Clone()
	if err != nil {
		return err
	}
	tmpl.Funcs(template.FuncMap{
		"t": func(key string) string { return r.bundle.T(locale, key) },
	})

	data := viewData{
		Locale:    locale,
		Page:      page,
		Meta:      r.meta,
		Canonical: absoluteURL(r.meta.BaseURL, page.Route),
		Image:     absoluteURL(r.meta.BaseURL, r.meta.Image),
		Year:      time.Now().Year(),
		Landing:   landingSections(r.meta.Phone),
	}

	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("error rendering %s: %w", route, err)
	}
	return nil
}

func assetPath(name string) string {
	return "/static/" + strings.TrimLeft(name, "/")
}

func absoluteURL(base, p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}
