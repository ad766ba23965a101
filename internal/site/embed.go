package site

import (
	"embed"
	"io/fs"

	"github.com/romangod6/queuer-site/internal/i18n"
)

//go:embed templates static locales
var content embed.FS

// StaticFS holds the assets copied to <outDir>/static and served under /static.
func StaticFS() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadBundle loads the embedded locale files.
func LoadBundle(defaultLocale string) (*i18n.Bundle, error) {
	return i18n.Load(content, "locales", defaultLocale)
}
