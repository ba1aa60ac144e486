package smsgateway

import (
	"regexp"
	"strings"
)

var reNonDigit = regexp.MustCompile(`\D+`)

// NormalizeIranianPhone converts raw user input into the canonical
// +98XXXXXXXXXX form.
//
// Only four input shapes are accepted after stripping non-digits:
//
//	09123456789   (11 digits, leading 0)
//	9123456789    (10 digits, leading 9)
//	989123456789  (12 digits, leading 989)
//	+989123456789 (13 characters, leading +989; digits collapse to 12)
//
// Everything else is rejected with ok=false; no partially-normalized value is
// ever returned.
func NormalizeIranianPhone(raw string) (string, bool) {
	digits := reNonDigit.ReplaceAllString(raw, "")

	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "09"):
		return "+98" + digits[1:], true
	case len(digits) == 10 && strings.HasPrefix(digits, "9"):
		return "+98" + digits, true
	case len(digits) == 12 && strings.HasPrefix(digits, "989"):
		return "+" + digits, true
	default:
		return "", false
	}
}
