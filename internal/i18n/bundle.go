// Package i18n resolves static translation keys for the rendered pages.
package i18n

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

type Bundle struct {
	defaultLocale string
	locales       map[string]*viper.Viper
	supported     []string
	matcher       language.Matcher
}

// Load reads every <dir>/<locale>.yaml file in fsys.
func Load(fsys fs.FS, dir, defaultLocale string) (*Bundle, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		defaultLocale: defaultLocale,
		locales:       make(map[string]*viper.Viper),
	}

	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", file, err)
		}

		v := viper.New()
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", file, err)
		}

		locale := strings.TrimSuffix(path.Base(file), ".yaml")
		b.locales[locale] = v
	}

	if _, ok := b.locales[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q not found in %s", defaultLocale, dir)
	}

	// The matcher falls back to the first tag, so the default goes first.
	b.supported = append(b.supported, defaultLocale)
	var others []string
	for locale := range b.locales {
		if locale != defaultLocale {
			others = append(others, locale)
		}
	}
	sort.Strings(others)
	b.supported = append(b.supported, others...)

	tags := make([]language.Tag, 0, len(b.supported))
	for _, locale := range b.supported {
		tags = append(tags, language.Make(locale))
	}
	b.matcher = language.NewMatcher(tags)

	return b, nil
}

func (b *Bundle) DefaultLocale() string {
	return b.defaultLocale
}

// Locales lists the loaded locales, default first.
func (b *Bundle) Locales() []string {
	return append([]string(nil), b.supported...)
}

func (b *Bundle) Has(locale string) bool {
	_, ok := b.locales[locale]
	return ok
}

// T looks key up in locale, then in the default locale, then returns the key itself.
func (b *Bundle) T(locale, key string) string {
	if v, ok := b.locales[locale]; ok && v.IsSet(key) {
		return v.GetString(key)
	}
	if v := b.locales[b.defaultLocale]; v.IsSet(key) {
		return v.GetString(key)
	}
	return key
}

// Match picks the best loaded locale for an Accept-Language header value.
func (b *Bundle) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.defaultLocale
	}
	_, index, _ := b.matcher.Match(tags...)
	return b.supported[index]
}
