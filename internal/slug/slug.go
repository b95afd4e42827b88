// Package slug derives canonical URL identifiers from shop display names.
package slug

import (
	"strconv"
	"strings"
	"time"
)

// Generate lowercases the name, collapses every run of characters outside
// [a-z0-9] into a single dash and strips leading/trailing dashes. Characters
// outside [a-z0-9], including accented letters, collapse to dashes. An empty
// result means the name cannot produce a usable slug; callers must reject it.
func Generate(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))

	dash := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		} else {
			dash = true
		}
	}

	return b.String()
}

// WithSuffix appends a monotonically distinct token to disambiguate a slug
// that collides with an existing one. The result is used verbatim and is not
// re-normalized; a second collision is left to the store's unique index.
func WithSuffix(s string) string {
	return s + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
