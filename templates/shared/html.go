package shared

import (
	"context"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// Writer writes HTML fragments and keeps the first error.
type Writer struct {
	W   io.Writer
	Err error
}

func (w *Writer) Raw(s string) {
	if w.Err != nil {
		return
	}
	_, w.Err = io.WriteString(w.W, s)
}

func (w *Writer) Text(s string) { w.Raw(templ.EscapeString(s)) }

// Component renders c in place.
func (w *Writer) Component(ctx context.Context, c templ.Component) {
	if w.Err != nil {
		return
	}
	w.Err = c.Render(ctx, w.W)
}

var attrName = regexp.MustCompile(`^[a-zA-Z_:][-a-zA-Z0-9_:.]*$`)

// Attrs renders attributes in key order. Keys in skip are left out so
// callers can keep control of attributes they set themselves.
func Attrs(attrs map[string]string, skip ...string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if !attrName.MatchString(k) || contains(skip, k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(templ.EscapeString(attrs[k]))
		b.WriteString(`"`)
	}
	return b.String()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
