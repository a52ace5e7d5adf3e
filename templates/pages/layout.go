package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/MikeOwino/hydrogen/pkg/view"
	"github.com/MikeOwino/hydrogen/templates/components"
	"github.com/MikeOwino/hydrogen/templates/shared"
)

// Layout wraps body in the storefront shell. head holds the SEO tags.
func Layout(lang string, head templ.Component, flash *view.Flash, body templ.Component) templ.Component {
	if lang == "" {
		lang = "en"
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &shared.Writer{W: w}
		hw.Raw(`<!DOCTYPE html><html lang="` + templ.EscapeString(lang) + `"><head><meta charset="utf-8">`)
		hw.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		if head != nil {
			hw.Component(ctx, head)
		}
		hw.Raw(`</head><body>`)
		if flash != nil && flash.Message != "" {
			hw.Raw(`<div class="flash flash-` + templ.EscapeString(string(flash.Kind)) + `" role="alert">`)
			hw.Text(flash.Message)
			hw.Raw(`</div>`)
		}
		hw.Raw(`<main>`)
		hw.Component(ctx, body)
		hw.Raw(`</main></body></html>`)
		return hw.Err
	})
}

func Product(p view.ProductDetailPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &shared.Writer{W: w}
		hw.Raw(`<article class="product">`)
		if p.Product.ImageURL != "" {
			hw.Raw(`<img src="` + templ.EscapeString(p.Product.ImageURL) + `" alt="` + templ.EscapeString(p.Product.Title) + `">`)
		}
		hw.Raw(`<h1>`)
		hw.Text(p.Product.Title)
		hw.Raw(`</h1>`)
		if p.Product.Vendor != "" {
			hw.Raw(`<p class="vendor">`)
			hw.Text(p.Product.Vendor)
			hw.Raw(`</p>`)
		}
		if p.Product.Price != "" {
			hw.Raw(`<p class="price">`)
			hw.Text(p.Product.Price)
			hw.Raw(`</p>`)
		}
		if len(p.Variants) > 0 {
			hw.Raw(`<ul class="variants">`)
			for _, v := range p.Variants {
				hw.Raw(`<li><a href="?variant=` + templ.EscapeString(v.ID) + `"`)
				if v.Selected {
					hw.Raw(` aria-current="true"`)
				}
				hw.Raw(`>`)
				hw.Text(v.Title)
				if !v.Available {
					hw.Raw(` <span class="sold-out">Sold out</span>`)
				}
				hw.Raw(`</a> `)
				hw.Text(v.Price)
				hw.Raw(`</li>`)
			}
			hw.Raw(`</ul>`)
		}
		hw.Component(ctx, components.AddToCartButton(p.Button))
		hw.Raw(`<div class="description">`)
		hw.Text(p.Product.Description)
		hw.Raw(`</div></article>`)
		return hw.Err
	})
}

func Cart(c view.CartPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &shared.Writer{W: w}
		hw.Raw(`<section class="cart"><h1>Cart</h1>`)
		if len(c.Items) == 0 {
			hw.Raw(`<p>Your cart is empty.</p></section>`)
			return hw.Err
		}
		hw.Raw(`<ul>`)
		for _, it := range c.Items {
			hw.Raw(`<li><a href="/products/` + templ.EscapeString(it.ProductHandle) + `">`)
			hw.Text(it.ProductTitle)
			hw.Raw(`</a>`)
			if it.VariantTitle != "" {
				hw.Raw(` <span class="variant">`)
				hw.Text(it.VariantTitle)
				hw.Raw(`</span>`)
			}
			hw.Raw(` × ` + strconv.Itoa(it.Qty) + ` `)
			hw.Text(it.LineTotal)
			hw.Raw(`</li>`)
		}
		hw.Raw(`</ul><p class="subtotal">Subtotal: `)
		hw.Text(c.Subtotal)
		hw.Raw(`</p></section>`)
		return hw.Err
	})
}

// Home lists product cards linking to their product pages.
func Home(h view.HomePage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &shared.Writer{W: w}
		hw.Raw(`<h1>`)
		hw.Text(h.Title)
		hw.Raw(`</h1><ul class="products">`)
		for _, p := range h.Products {
			hw.Raw(`<li><a href="/products/` + templ.EscapeString(p.Handle) + `">`)
			if p.ImageURL != "" {
				hw.Raw(`<img src="` + templ.EscapeString(p.ImageURL) + `" alt="">`)
			}
			hw.Text(p.Title)
			hw.Raw(`</a>`)
			if p.Price != "" {
				hw.Raw(` <span class="price">`)
				hw.Text(p.Price)
				hw.Raw(`</span>`)
			}
			hw.Raw(`</li>`)
		}
		hw.Raw(`</ul>`)
		return hw.Err
	})
}

// Content renders a heading and body text, used by home, collection and page routes.
func Content(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &shared.Writer{W: w}
		hw.Raw(`<h1>`)
		hw.Text(title)
		hw.Raw(`</h1><div class="body">`)
		hw.Text(body)
		hw.Raw(`</div>`)
		return hw.Err
	})
}

func Error(status int, msg, requestID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &shared.Writer{W: w}
		hw.Raw(`<section class="error"><h1>` + strconv.Itoa(status) + `</h1><p>`)
		hw.Text(msg)
		hw.Raw(`</p>`)
		if requestID != "" {
			hw.Raw(`<p class="request-id">Request ID: `)
			hw.Text(requestID)
			hw.Raw(`</p>`)
		}
		hw.Raw(`</section>`)
		return hw.Err
	})
}
