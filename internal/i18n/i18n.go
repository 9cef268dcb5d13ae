// Package i18n holds the message catalogs shown to trainers and picks a
// language from the Accept-Language header.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localesFS embed.FS

// Catalog maps language -> key -> message.
type Catalog struct {
	messages map[string]map[string]string
	fallback string
	langs    []string
	matcher  language.Matcher
}

// Load reads every embedded locale. fallback is the language used when a
// request matches none of them and when a key is missing.
func Load(fallback string) (*Catalog, error) {
	entries, err := localesFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	c := &Catalog{messages: make(map[string]map[string]string), fallback: fallback}
	for _, e := range entries {
		lang := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		raw, err := localesFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		msgs := make(map[string]string)
		if err := json.Unmarshal(raw, &msgs); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		c.messages[lang] = msgs
	}
	if _, ok := c.messages[fallback]; !ok {
		return nil, fmt.Errorf("no catalog for default language %q", fallback)
	}

	// The matcher treats its first tag as the default.
	c.langs = []string{fallback}
	for lang := range c.messages {
		if lang != fallback {
			c.langs = append(c.langs, lang)
		}
	}
	sort.Strings(c.langs[1:])

	tags := make([]language.Tag, 0, len(c.langs))
	for _, lang := range c.langs {
		tags = append(tags, language.Make(lang))
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

// Languages lists the available catalogs, default first.
func (c *Catalog) Languages() []string {
	return append([]string(nil), c.langs...)
}

// Negotiate picks the best catalog for an Accept-Language header value.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return c.fallback
	}
	return c.langs[idx]
}

// Translate returns key in lang, then in the default language, then the key
// itself.
func (c *Catalog) Translate(lang, key string) string {
	if msg, ok := c.messages[lang][key]; ok {
		return msg
	}
	if msg, ok := c.messages[c.fallback][key]; ok {
		return msg
	}
	return key
}
