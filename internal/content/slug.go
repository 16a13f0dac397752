package content

import (
	"strings"
	"unicode"
)

// Slugify derives a URL path segment from a page title: trimmed, lower-cased,
// whitespace runs collapsed to a single dash. Letters (including CJK) and
// digits are kept; other punctuation is dropped.
func Slugify(title string) string {
	var b strings.Builder
	pendingDash := false

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingDash = true
		}
	}

	return b.String()
}
