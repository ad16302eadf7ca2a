package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify converts a title into a URL-safe slug
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // suppress leading dashes
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// DedupeSlug appends a numeric suffix until the slug no longer collides.
// exists is called with each candidate and reports whether it is taken.
func DedupeSlug(base string, exists func(string) bool) string {
	if base == "" {
		base = "untitled"
	}
	if !exists(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !exists(candidate) {
			return candidate
		}
	}
}
