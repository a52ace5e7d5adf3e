package seo

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// headState is shared by the renderers of one page head. Page tags are
// written first and claim their keys; site defaults fill in only what the
// page left out.
type headState struct {
	template string
	seen     map[string]bool
}

type headKey struct{}

func withHead(ctx context.Context, st *headState) context.Context {
	return context.WithValue(ctx, headKey{}, st)
}

func headFrom(ctx context.Context) *headState {
	st, _ := ctx.Value(headKey{}).(*headState)
	return st
}

// claim reports whether the tag identified by key may be written.
func (st *headState) claim(key string) bool {
	if st == nil {
		return true
	}
	if st.seen[key] {
		return false
	}
	st.seen[key] = true
	return true
}

func (st *headState) pageTitle(title string) string {
	if st == nil || st.template == "" || title == "" {
		return title
	}
	if !strings.Contains(st.template, "%s") {
		return title
	}
	return strings.Replace(st.template, "%s", title, 1)
}

// Head renders the site-wide defaultSeo tags together with the tags for
// pageType. A tag the page sets replaces the default one, so the head holds
// one <title> and one og:url. Product, collection and page titles go
// through the default title template ("%s - <store>" unless the defaults
// carry their own titleTemplate).
func (d *Dispatcher) Head(ctx context.Context, defaults Data, pageType string, data Data, currentURL string) templ.Component {
	def := d.Component(ctx, TypeDefault, defaults, currentURL)
	page := d.Component(ctx, pageType, data, currentURL)

	var dp DefaultPage
	decode(defaults, &dp)
	tmpl := dp.titleTemplate()

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		st := &headState{template: tmpl, seen: map[string]bool{}}
		ctx = withHead(ctx, st)

		var buf bytes.Buffer
		if err := page.Render(ctx, &buf); err != nil {
			return err
		}
		if err := def.Render(ctx, w); err != nil {
			return err
		}
		_, err := buf.WriteTo(w)
		return err
	})
}
