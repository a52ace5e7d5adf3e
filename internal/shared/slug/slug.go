package slug

import (
	"strings"

	gslug "github.com/gosimple/slug"
)

// FromName builds a handle from a display name, e.g. "Winter Sale!" -> "winter-sale".
func FromName(s string) string {
	s = gslug.Make(strings.TrimSpace(s))
	if s == "" {
		return "product"
	}
	return s
}

// Handle normalizes a handle taken from a URL. ok is false when nothing
// usable remains.
func Handle(raw string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(raw))
	if gslug.IsSlug(h) {
		return h, true
	}
	h = gslug.Make(h)
	return h, h != ""
}
