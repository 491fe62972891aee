package utils

import "regexp"

var nonDigits = regexp.MustCompile(`\D+`)

// CountryCode is prepended to local numbers (Brazil).
const CountryCode = "55"

// NormalizePhone reduces a raw phone string to the canonical digit-only
// form used as the context key: "55" + DDD + number. Returns "" when the
// input cannot be a usable Brazilian number.
func NormalizePhone(raw string) string {
	if raw == "" {
		return ""
	}
	s := nonDigits.ReplaceAllString(raw, "")
	if len(s) >= 2 && s[:2] == CountryCode {
		return s
	}
	if len(s) >= 10 {
		return CountryCode + s
	}
	return ""
}
