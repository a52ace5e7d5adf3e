package seo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

// DefaultRenderers returns the built-in head tag renderers.
func DefaultRenderers() Renderers {
	return Renderers{
		Default:    RendererFunc(renderDefaultPage),
		Homepage:   RendererFunc(renderHomePage),
		Product:    RendererFunc(renderProduct),
		Collection: RendererFunc(renderCollection),
		Page:       RendererFunc(renderPage),
	}
}

func renderDefaultPage(data Data) templ.Component {
	var p DefaultPage
	decode(data, &p)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHeadWriter(ctx, w)
		hw.title(p.Title)
		hw.description(p.Description)
		hw.property("og:site_name", p.Title)
		hw.property("og:type", "website")
		hw.property("og:url", p.URL)
		hw.name("twitter:card", "summary_large_image")
		hw.name("twitter:site", p.TwitterSite)
		if p.Lang != "" {
			hw.property("og:locale", p.Lang)
		}
		return hw.err
	})
}

func renderHomePage(data Data) templ.Component {
	var p HomePage
	decode(data, &p)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHeadWriter(ctx, w)
		hw.title(p.Title)
		hw.property("og:url", p.URL)
		hw.jsonLD(map[string]any{
			"@context": "https://schema.org",
			"@type":    "Organization",
			"name":     p.Title,
			"url":      p.URL,
		})
		return hw.err
	})
}

func renderProduct(data Data) templ.Component {
	var p Product
	decode(data, &p)
	title := firstNonEmpty(p.Seo.Title, p.Title)
	description := firstNonEmpty(p.Seo.Description, p.Description)

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHeadWriter(ctx, w)
		hw.pageTitle(title)
		hw.description(description)
		hw.property("og:type", "og:product")
		hw.property("og:url", p.URL)
		if len(p.Images) > 0 {
			hw.image(p.Images[0])
		}
		if len(p.Variants) > 0 {
			first := p.Variants[0]
			if amount, ok := normalizeAmount(first.Price.Amount); ok {
				hw.property("og:price:amount", amount)
				hw.property("og:price:currency", first.Price.CurrencyCode)
			}
		}
		hw.jsonLD(productJSONLD(p, title, description))
		return hw.err
	})
}

func productJSONLD(p Product, title, description string) map[string]any {
	ld := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        title,
		"description": description,
		"url":         p.URL,
	}
	if p.Vendor != "" {
		ld["brand"] = map[string]any{"@type": "Thing", "name": p.Vendor}
	}
	if len(p.Images) > 0 {
		ld["image"] = p.Images[0].URL
	}
	if len(p.Variants) > 0 && p.Variants[0].SKU != "" {
		ld["sku"] = p.Variants[0].SKU
	}

	offers := make([]map[string]any, 0, len(p.Variants))
	for _, v := range p.Variants {
		amount, ok := normalizeAmount(v.Price.Amount)
		if !ok {
			continue
		}
		availability := "https://schema.org/OutOfStock"
		if v.AvailableForSale {
			availability = "https://schema.org/InStock"
		}
		offer := map[string]any{
			"@type":         "Offer",
			"availability":  availability,
			"price":         amount,
			"priceCurrency": v.Price.CurrencyCode,
			"url":           variantURL(p.URL, v.ID),
		}
		if v.SKU != "" {
			offer["sku"] = v.SKU
		}
		if v.Image != nil && v.Image.URL != "" {
			offer["image"] = v.Image.URL
		}
		offers = append(offers, offer)
	}
	if len(offers) > 0 {
		ld["offers"] = offers
	}
	return ld
}

func variantURL(productURL, variantID string) string {
	if productURL == "" || variantID == "" {
		return productURL
	}
	sep := "?"
	if strings.Contains(productURL, "?") {
		sep = "&"
	}
	return productURL + sep + "variant=" + variantID
}

func normalizeAmount(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return d.StringFixed(2), true
}

func renderCollection(data Data) templ.Component {
	var c Collection
	decode(data, &c)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHeadWriter(ctx, w)
		hw.pageTitle(firstNonEmpty(c.Seo.Title, c.Title))
		hw.description(firstNonEmpty(c.Seo.Description, c.Description))
		if c.Image != nil {
			hw.image(*c.Image)
		}
		return hw.err
	})
}

func renderPage(data Data) templ.Component {
	var p Page
	decode(data, &p)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHeadWriter(ctx, w)
		hw.pageTitle(firstNonEmpty(p.Seo.Title, p.Title))
		hw.description(p.Seo.Description)
		return hw.err
	})
}

// headWriter writes head tags and keeps the first write error. Inside Head
// each tag is written at most once.
type headWriter struct {
	w   io.Writer
	st  *headState
	err error
}

func newHeadWriter(ctx context.Context, w io.Writer) *headWriter {
	return &headWriter{w: w, st: headFrom(ctx)}
}

func (h *headWriter) write(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *headWriter) title(t string) {
	h.titleTag(t)
	h.property("og:title", t)
	h.name("twitter:title", t)
}

// pageTitle is title with the site title template applied to <title>.
func (h *headWriter) pageTitle(t string) {
	h.titleTag(h.st.pageTitle(t))
	h.property("og:title", t)
	h.name("twitter:title", t)
}

func (h *headWriter) titleTag(t string) {
	if t == "" || !h.st.claim("title") {
		return
	}
	h.write("<title>" + templ.EscapeString(t) + "</title>")
}

func (h *headWriter) description(d string) {
	if d == "" {
		return
	}
	h.name("description", d)
	h.property("og:description", d)
	h.name("twitter:description", d)
}

func (h *headWriter) image(im Image) {
	if im.URL == "" {
		return
	}
	h.property("og:image", im.URL)
	h.property("og:image:secure_url", im.URL)
	if im.Width > 0 {
		h.property("og:image:width", fmt.Sprint(im.Width))
	}
	if im.Height > 0 {
		h.property("og:image:height", fmt.Sprint(im.Height))
	}
	h.property("og:image:alt", im.AltText)
	h.name("twitter:image", im.URL)
	h.name("twitter:image:alt", im.AltText)
}

func (h *headWriter) property(prop, content string) {
	if content == "" || !h.st.claim("property:"+prop) {
		return
	}
	h.write(`<meta property="` + templ.EscapeString(prop) + `" content="` + templ.EscapeString(content) + `">`)
}

func (h *headWriter) name(name, content string) {
	if content == "" || !h.st.claim("name:"+name) {
		return
	}
	h.write(`<meta name="` + templ.EscapeString(name) + `" content="` + templ.EscapeString(content) + `">`)
}

// json.Marshal escapes <, > and &, so the payload cannot close the script tag.
func (h *headWriter) jsonLD(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		if h.err == nil {
			h.err = err
		}
		return
	}
	h.write(`<script type="application/ld+json">` + string(b) + `</script>`)
}
