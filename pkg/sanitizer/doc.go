// Package sanitizer normalizes and masks user input.
//
// Transforms are plain func(string) string values that can be chained with
// Apply or stored as pipelines with Compose:
//
//	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.ToLower)
//	key := clean("  User@Example.COM ")
//
// NormalizeEmail builds account lookup keys; MaskEmail and SingleLine keep
// log output short and free of personal data.
package sanitizer
