package sanitizer

import "strings"

var lowerTrim = Compose(Trim, ToLower)

// NormalizeEmail lowercases and trims an address and consolidates dots in
// the local part. Input without exactly one "@" is only lowercased and trimmed.
func NormalizeEmail(email string) string {
	email = lowerTrim(email)

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = dotRegex.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	email = Trim(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return email
	}

	runes := []rune(local)
	if len(runes) == 1 {
		return "*@" + domain
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-1) + "@" + domain
}
