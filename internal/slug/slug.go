// Package slug derives URL-safe post identifiers from titles.
package slug

import (
	"fmt"
	"strings"
	"unicode"
)

// Make normalizes a title into a URL-safe slug: lower-case, keep only
// [a-z0-9], map whitespace and hyphen runs to a single hyphen, and trim
// leading/trailing hyphens. An empty or fully stripped title yields an
// empty slug; the caller resolves that through Resolve.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}
	return b.String()
}

// Resolve returns candidate if it is not taken, otherwise the first of
// candidate-1, candidate-2, ... that is free. When renaming a post the
// caller must exclude the post's own current slug from taken.
func Resolve(candidate string, taken map[string]bool) string {
	if !taken[candidate] {
		return candidate
	}
	for i := 1; ; i++ {
		next := fmt.Sprintf("%s-%d", candidate, i)
		if !taken[next] {
			return next
		}
	}
}
