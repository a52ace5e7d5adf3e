package handlers

import (
	"strings"

	"github.com/MikeOwino/hydrogen/internal/modules/products"
)

// selectionFrom maps a submitted variant value to a Selection. The caller
// only asks when the field was present: an empty value means "no variant".
func selectionFrom(raw string) products.Selection {
	v := strings.TrimSpace(raw)
	if v == "" || v == "null" {
		return products.SelectNone()
	}
	return products.Select(v)
}

// safeReturnTo allows only same-site absolute paths.
func safeReturnTo(raw, fallback string) string {
	v := strings.TrimSpace(raw)
	if v == "" || !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") || strings.HasPrefix(v, `/\`) {
		return fallback
	}
	return v
}
