package source

import "strings"

// Slug maps a human readable title to the site's URL slug. ASCII letters and
// digits are kept (lower-cased), spaces and hyphens become a single hyphen
// each and everything else is dropped without a separator, so "+C SWORD"
// becomes "c-sword". Runs of hyphens are not collapsed.
func Slug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r == ' ' || r == '-':
			b.WriteByte('-')
		}
	}

	return b.String()
}
