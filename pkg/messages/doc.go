// Package messages holds the user-facing text for field validation and
// authentication failures.
//
// The tables are YAML catalogs embedded in the binary and rendered through
// pkg/i18n, so adding a language is a matter of dropping a file into
// locales/. Lookups missing from a catalog fall back to English.
//
//	cat := messages.MustNew(ctx, messages.WithLanguage("es-MX"))
//	_, err := validator.ValidatePassword("pass1", validator.DefaultPasswordPolicy())
//	fmt.Println(cat.Password(err)) // one line per unmet requirement
package messages
