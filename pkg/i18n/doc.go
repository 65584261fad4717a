// Package i18n provides a small translator over nested YAML catalogs.
//
// Catalogs are keyed by language at the top level and by dot-separated paths
// below it:
//
//	en:
//	  validation:
//	    name:
//	      too_short: "Name should be at least %{count} characters long"
//
// A Translator is built from a TranslationAdapter. MapAdapter serves in-memory
// data and FSAdapter reads every YAML file of a directory in an fs.FS, which is
// how catalogs embedded with go:embed are loaded:
//
//	//go:embed locales
//	var locales embed.FS
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"))
//	msg := tr.T("en", "validation.name.too_short", "count", "3")
//
// Placeholders use the %{name} form and are filled from key-value argument
// pairs. N selects .zero/.one/.other plural forms. Td takes an explicit
// default. Missing keys fall back to the key itself unless
// WithFallbackToKey(false) is set.
//
// MatchLanguage and Translator.Lang pick the best supported language for a
// list of preferred tags using golang.org/x/text/language, accepting POSIX
// locale strings such as "en_US.UTF-8".
package i18n
