// internal/models/sitemap.go
package models

import "encoding/xml"

const (
	SitemapNamespace      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XSINamespace          = "http://www.w3.org/2001/XMLSchema-instance"
	SitemapSchemaLocation = SitemapNamespace + " " + SitemapNamespace + "/sitemap.xsd"
)

// URLSet represents the structure of an XML sitemap.
type URLSet struct {
	XMLName        xml.Name `xml:"urlset"`
	XMLNS          string   `xml:"xmlns,attr,omitempty"`
	XSI            string   `xml:"xmlns:xsi,attr,omitempty"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr,omitempty"`
	URLs           []URL    `xml:"url"`
}

// URL represents a single URL entry in the sitemap.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// NewURLSet returns an empty urlset carrying the sitemaps.org namespace declarations.
func NewURLSet() *URLSet {
	return &URLSet{
		XMLNS:          SitemapNamespace,
		XSI:            XSINamespace,
		SchemaLocation: SitemapSchemaLocation,
	}
}
