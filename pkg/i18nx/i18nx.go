// Package i18nx localizes user-facing text. The catalogs are fixed at build
// time; services receive an opaque Translator per request and never touch the
// bundle directly.
package i18nx

import "strings"

// Args are named placeholder values substituted into a message.
type Args map[string]string

// Translator resolves a message key for one request's language.
type Translator func(key string, args Args) string

// Bundle holds the message catalogs for all supported languages.
type Bundle struct {
	catalogs map[string]map[string]string
	fallback string
}

// NewBundle returns the built-in ua/en/ru catalogs with Ukrainian fallback,
// matching the languages the client ships with.
func NewBundle() *Bundle {
	return &Bundle{
		catalogs: map[string]map[string]string{
			"ua": catalogUA,
			"en": catalogEN,
			"ru": catalogRU,
		},
		fallback: "ua",
	}
}

// Translator returns the lookup function for the given language, falling
// back to the default language for unknown codes and missing keys.
func (b *Bundle) Translator(lang string) Translator {
	catalog, ok := b.catalogs[normalize(lang)]
	if !ok {
		catalog = b.catalogs[b.fallback]
	}
	fallback := b.catalogs[b.fallback]

	return func(key string, args Args) string {
		msg, ok := catalog[key]
		if !ok {
			msg = fallback[key]
		}
		if msg == "" {
			return key
		}
		for name, value := range args {
			msg = strings.ReplaceAll(msg, "{{"+name+"}}", value)
		}
		return msg
	}
}

// Supported reports whether lang has its own catalog.
func (b *Bundle) Supported(lang string) bool {
	_, ok := b.catalogs[normalize(lang)]
	return ok
}

func normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_,;"); i > 0 {
		lang = lang[:i]
	}
	return lang
}
