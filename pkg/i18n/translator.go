package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ErrLanguageNotSupported indicates that the requested language is not available
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}

// Translator resolves dot-separated keys to localized strings.
// It uses an adapter to load translations from various sources.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	keyFallback    bool
	logMissing     bool
	log            *slog.Logger
	mu             sync.RWMutex
	adapter        TranslationAdapter
}

// NewTranslator creates a new Translator instance with the given adapter and options.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang: DefaultLanguage,
		keyFallback: true,
		log:         slog.New(slog.DiscardHandler),
		adapter:     adapter,
	}

	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := t.validateTranslations(translations); err != nil {
		return nil, err
	}

	t.translations = translations
	t.log.DebugContext(ctx, "translations loaded", "languages", t.supportedLanguages())
	return t, nil
}

func (t *Translator) validateTranslations(trans map[string]map[string]any) error {
	if len(trans) == 0 {
		t.log.Warn("no translations provided")
		return nil
	}

	for lang, translations := range trans {
		if lang == "" {
			return fmt.Errorf("empty language code found")
		}
		if translations == nil {
			return fmt.Errorf("nil translations map for language: %s", lang)
		}
	}
	return nil
}

func (t *Translator) supportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// SupportedLanguages returns a sorted list of language codes that have translations available.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedLanguages()
}

// DefaultLanguage returns the language used by Lang when nothing better matches.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Lang picks the supported language closest to the preferred tags.
func (t *Translator) Lang(preferred ...string) string {
	return MatchLanguage(t.SupportedLanguages(), t.defaultLang, preferred...)
}

// getTranslation traverses a nested map using dot-separated keys.
// Key "validation.password.digits" reads m["validation"]["password"]["digits"].
func (t *Translator) getTranslation(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m

	for i, part := range parts {
		if i == len(parts)-1 {
			val, ok := current[part]
			return val, ok
		}

		next, ok := current[part]
		if !ok {
			return nil, false
		}

		currentMap, ok := next.(map[string]any)
		if !ok {
			anyMap, isAnyMap := next.(map[any]any)
			if !isAnyMap {
				return nil, false
			}

			currentMap = make(map[string]any, len(anyMap))
			for k, v := range anyMap {
				if ks, ok := k.(string); ok {
					currentMap[ks] = v
				}
			}
		}

		current = currentMap
	}

	return nil, false
}

// HasTranslation checks if a translation exists for the given language and key.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langMap, ok := t.translations[lang]
	if !ok {
		return false
	}

	_, ok = t.getTranslation(langMap, key)
	return ok
}

// buildParams converts key, value, key, value, … pairs into a map.
// If the number of arguments is odd, the last one is ignored.
func buildParams(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// sprintf substitutes "%{name}" placeholders; unknown placeholders are kept as is.
func sprintf(tmpl string, args []string) string {
	if len(args) == 0 {
		return tmpl
	}
	params := buildParams(args)
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := params[name]; ok {
			return val
		}
		return match
	})
}

func (t *Translator) missing(msg, lang, key string) {
	if t.logMissing {
		t.log.Warn(msg, "lang", lang, "key", key)
	}
}

// T translates a key for the given language.
// Arguments are key-value pairs substituted into "%{name}" placeholders:
//
//	// "validation.name.too_short": "Name should be at least %{count} characters long"
//	translator.T("en", "validation.name.too_short", "count", "3")
//
// If the translation is missing and fallback to key is enabled, the key itself
// is returned. Otherwise the result is an empty string.
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langMap, ok := t.translations[lang]
	if !ok {
		t.missing("language not supported", lang, key)
		return t.fallback(key, args)
	}

	val, ok := t.getTranslation(langMap, key)
	if !ok {
		t.missing("translation not found", lang, key)
		return t.fallback(key, args)
	}

	switch v := val.(type) {
	case string:
		return sprintf(v, args)
	case fmt.Stringer:
		return sprintf(v.String(), args)
	default:
		t.missing("translation is not a string", lang, key)
		return t.fallback(key, args)
	}
}

func (t *Translator) fallback(key string, args []string) string {
	if t.keyFallback {
		return sprintf(key, args)
	}
	return ""
}

// N translates a key with pluralization. It looks up key+".zero" (n == 0),
// key+".one" (n == 1) or key+".other", then the key itself.
// A "count" argument equal to n is added unless one is passed explicitly.
func (t *Translator) N(lang, key string, n int, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langMap, ok := t.translations[lang]
	if !ok {
		t.missing("language not supported", lang, key)
		return t.fallback(key, args)
	}

	var forms []string
	switch n {
	case 0:
		forms = []string{key + ".zero", key + ".other"}
	case 1:
		forms = []string{key + ".one"}
	default:
		forms = []string{key + ".other"}
	}
	forms = append(forms, key)

	for _, form := range forms {
		val, found := t.getTranslation(langMap, form)
		if !found {
			continue
		}
		s, isString := val.(string)
		if !isString {
			continue
		}
		if _, hasCount := buildParams(args)["count"]; !hasCount {
			args = append(args, "count", strconv.Itoa(n))
		}
		return sprintf(s, args)
	}

	t.missing("pluralization not found", lang, key)
	return t.fallback(key, args)
}

// Td translates a key with an explicit default used when the key is missing.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langMap, ok := t.translations[lang]
	if !ok {
		t.missing("language not supported", lang, key)
		return sprintf(defaultValue, args)
	}

	val, ok := t.getTranslation(langMap, key)
	if !ok {
		t.missing("translation not found", lang, key)
		return sprintf(defaultValue, args)
	}

	strVal, ok := val.(string)
	if !ok {
		t.missing("translation is not a string", lang, key)
		return sprintf(defaultValue, args)
	}

	return sprintf(strVal, args)
}
