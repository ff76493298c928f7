// Package i18n provides internationalization support for error messages.
package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "en-US"

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

//go:embed locales/*.yaml
var embeddedLocales embed.FS

var (
	catalogsMu sync.RWMutex
	// catalogs holds embedded and registered catalogs by locale.
	catalogs = map[string]*Catalog{}
	matcher  language.Matcher
	tags     []language.Tag
)

func init() {
	loaded, err := LoadFromFS(embeddedLocales)
	if err != nil {
		panic(fmt.Sprintf("load embedded error catalogs: %v", err))
	}
	for _, cat := range loaded {
		catalogs[cat.locale] = cat
	}
	rebuildMatcherLocked()
}

// LoadFromFS parses every locales/*.yaml file in fsys.
func LoadFromFS(fsys fs.FS) ([]*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	out := make([]*Catalog, 0, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		locale := strings.TrimSpace(file.Locale)
		if want := strings.TrimSuffix(path.Base(p), ".yaml"); locale != want {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name %q", p, locale, want)
		}
		if _, err := language.Parse(locale); err != nil {
			return nil, fmt.Errorf("catalog %s: parse locale: %w", p, err)
		}
		out = append(out, NewCatalog(locale, file.Messages))
	}
	return out, nil
}

// GetCatalog returns the catalog best matching the given locale.
// Falls back to en-US if nothing matches.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}
	if c, ok := lookupCatalog(requested); ok {
		return c
	}

	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	tag, err := language.Parse(requested)
	if err != nil {
		return catalogs[BaseLocale]
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return catalogs[BaseLocale]
	}
	if c, ok := catalogs[tags[index].String()]; ok {
		return c
	}
	return catalogs[BaseLocale]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// RegisterCatalog registers a catalog for the given locale.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
	rebuildMatcherLocked()
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		locale:   locale,
		messages: cloned,
	}
}

func lookupCatalog(locale string) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	cat, ok := catalogs[locale]
	return cat, ok
}

// rebuildMatcherLocked keeps the base locale first so it wins ties.
func rebuildMatcherLocked() {
	tags = tags[:0]
	tags = append(tags, language.MustParse(BaseLocale))
	locales := make([]string, 0, len(catalogs))
	for locale := range catalogs {
		if locale != BaseLocale {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	matcher = language.NewMatcher(tags)
}
