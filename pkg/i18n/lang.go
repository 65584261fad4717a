package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is the default language code used when no language is detected
const DefaultLanguage = "en"

// MatchLanguage returns the entry of supported that best serves the preferred
// tags, or defaultLang when none is close enough. Preferred values may be BCP 47
// tags ("en-GB") or POSIX locale strings ("en_GB.UTF-8").
func MatchLanguage(supported []string, defaultLang string, preferred ...string) string {
	if len(supported) == 0 {
		return defaultLang
	}

	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tags = append(tags, language.Make(s))
	}

	var want []language.Tag
	for _, p := range preferred {
		p = normalizeLocale(p)
		if p == "" {
			continue
		}
		tag, err := language.Parse(p)
		if err != nil {
			continue
		}
		want = append(want, tag)
	}
	if len(want) == 0 {
		return defaultLang
	}

	_, idx, confidence := language.NewMatcher(tags).Match(want...)
	if confidence == language.No {
		return defaultLang
	}
	return supported[idx]
}

// normalizeLocale turns "en_US.UTF-8" into "en-US" and drops "C"/"POSIX".
func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}
