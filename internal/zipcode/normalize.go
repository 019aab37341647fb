// Package zipcode normalizes US postal codes to their 5-digit form.
package zipcode

import (
	"regexp"
	"strings"
)

var leadingZip = regexp.MustCompile(`^(\d{5})`)

// Normalize returns the first five digits of raw when raw (after trimming
// whitespace) starts with at least five ASCII digits, and "" otherwise.
// ZIP+4 ("90210-1234") and padded values (" 90210 ") normalize to "90210".
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	m := leadingZip.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}
