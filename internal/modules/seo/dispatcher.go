package seo

import (
	"context"
	"log/slog"
	"maps"

	"github.com/a-h/templ"
)

// Page types accepted by the dispatcher.
const (
	TypeDefault    = "defaultSeo"
	TypeHomepage   = "homepage"
	TypeProduct    = "product"
	TypeCollection = "collection"
	TypePage       = "page"
)

const InvalidTypeMessage = "The <Seo/> only accepts type prop with values of defaultSeo, homepage, product, collection, or page."

// Data is the payload handed to a renderer, shaped like the storefront API
// response for the page.
type Data map[string]any

type Renderer interface {
	Render(data Data) templ.Component
}

type RendererFunc func(data Data) templ.Component

func (f RendererFunc) Render(data Data) templ.Component { return f(data) }

// Renderers holds one renderer per page type. Nil fields fall back to the
// built-in renderer for that type.
type Renderers struct {
	Default    Renderer
	Homepage   Renderer
	Product    Renderer
	Collection Renderer
	Page       Renderer
}

type route struct {
	renderer Renderer
	withURL  bool
}

type Dispatcher struct {
	logger *slog.Logger
	routes map[string]route
}

func NewDispatcher(logger *slog.Logger, r Renderers) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultRenderers()
	pick := func(custom, fallback Renderer) Renderer {
		if custom != nil {
			return custom
		}
		return fallback
	}
	return &Dispatcher{
		logger: logger,
		routes: map[string]route{
			TypeDefault:    {renderer: pick(r.Default, def.Default), withURL: true},
			TypeHomepage:   {renderer: pick(r.Homepage, def.Homepage), withURL: true},
			TypeProduct:    {renderer: pick(r.Product, def.Product), withURL: true},
			TypeCollection: {renderer: pick(r.Collection, def.Collection)},
			TypePage:       {renderer: pick(r.Page, def.Page)},
		},
	}
}

// Select returns the renderer for pageType and the data it should receive.
// defaultSeo, homepage and product receive a copy of data with "url" set to
// currentURL; the computed url replaces any url already in data.
// Unknown page types log InvalidTypeMessage and report false.
func (d *Dispatcher) Select(ctx context.Context, pageType string, data Data, currentURL string) (Renderer, Data, bool) {
	rt, ok := d.routes[pageType]
	if !ok {
		d.logger.WarnContext(ctx, InvalidTypeMessage, slog.String("type", pageType))
		return nil, nil, false
	}
	if rt.withURL {
		data = WithURL(data, currentURL)
	}
	return rt.renderer, data, true
}

// Component renders the SEO tags for pageType, or nothing for unknown types.
func (d *Dispatcher) Component(ctx context.Context, pageType string, data Data, currentURL string) templ.Component {
	r, data, ok := d.Select(ctx, pageType, data, currentURL)
	if !ok {
		return templ.NopComponent
	}
	return r.Render(data)
}

// WithURL returns a shallow copy of data with "url" set to url.
func WithURL(data Data, url string) Data {
	out := make(Data, len(data)+1)
	maps.Copy(out, data)
	out["url"] = url
	return out
}
