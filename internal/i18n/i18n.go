// Package i18n provides the localized UI strings for the panel. Catalogs
// are plain message tables with {name} placeholders; locale selection is
// negotiated against the environment with golang.org/x/text.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.French,
}

var catalogs = map[language.Tag]map[string]string{
	language.English: catalogEN,
	language.French:  catalogFR,
}

// Translator resolves message keys against a locale catalog, falling back
// to English for keys a translation does not cover.
type Translator struct {
	tag      language.Tag
	msgs     map[string]string
	fallback map[string]string
}

// New creates a translator for the given locale string (e.g. "fr",
// "fr-FR", "fr_FR.UTF-8"). An empty locale consults the environment.
func New(locale string) *Translator {
	if locale == "" {
		locale = detectLocale()
	}

	matcher := language.NewMatcher(supported)
	desired, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		desired = language.English
	}
	_, index, _ := matcher.Match(desired)
	tag := supported[index]

	return &Translator{
		tag:      tag,
		msgs:     catalogs[tag],
		fallback: catalogs[language.English],
	}
}

// Locale returns the negotiated locale tag.
func (t *Translator) Locale() string {
	return t.tag.String()
}

// T resolves a message key, substituting {name} placeholders from the
// variadic key/value pairs. Unknown keys come back as the key itself so a
// missing message is visible instead of blank.
func (t *Translator) T(key string, kv ...string) string {
	msg, ok := t.msgs[key]
	if !ok {
		msg, ok = t.fallback[key]
	}
	if !ok {
		return key
	}

	for i := 0; i+1 < len(kv); i += 2 {
		msg = strings.ReplaceAll(msg, "{"+kv[i]+"}", kv[i+1])
	}
	return msg
}

// detectLocale reads the POSIX locale environment, highest priority first.
func detectLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return "en"
}

// normalizeLocale turns "fr_FR.UTF-8" into the BCP 47 form "fr-FR".
func normalizeLocale(locale string) string {
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		locale = locale[:i]
	}
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	return strings.ReplaceAll(locale, "_", "-")
}
