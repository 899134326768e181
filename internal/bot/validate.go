package bot

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// ValidEmail reports whether text looks like local@domain.tld.
func ValidEmail(text string) bool {
	return emailRe.MatchString(text)
}

// CleanPhone strips all whitespace from a phone string.
func CleanPhone(text string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(text), "")
}

// ValidPhone reports whether a cleaned phone string is 10-15 digits with
// an optional leading plus.
func ValidPhone(cleaned string) bool {
	return phoneRe.MatchString(cleaned)
}
