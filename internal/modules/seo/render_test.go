package seo

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ldScript = regexp.MustCompile(`<script type="application/ld\+json">(.*?)</script>`)

func jsonLD(t *testing.T, html string) map[string]any {
	t.Helper()
	m := ldScript.FindStringSubmatch(html)
	require.Len(t, m, 2, "no JSON-LD in %s", html)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(m[1]), &out))
	return out
}

func render(t *testing.T, pageType string, data Data) string {
	t.Helper()
	d := NewDispatcher(nil, Renderers{})
	return renderString(t, d.Component(context.Background(), pageType, data, storeURL))
}

func TestRenderDefaultPage(t *testing.T) {
	out := render(t, TypeDefault, Data{"title": "Snow Shop", "description": "Boards & wax", "twitterSite": "@snow"})

	assert.Contains(t, out, "<title>Snow Shop</title>")
	assert.Contains(t, out, `<meta name="description" content="Boards &amp; wax">`)
	assert.Contains(t, out, `<meta property="og:site_name" content="Snow Shop">`)
	assert.Contains(t, out, `<meta property="og:type" content="website">`)
	assert.Contains(t, out, `<meta property="og:url" content="https://store-name.com">`)
	assert.Contains(t, out, `<meta name="twitter:site" content="@snow">`)
}

func TestRenderHomePage(t *testing.T) {
	out := render(t, TypeHomepage, Data{"title": "Snow Shop"})

	ld := jsonLD(t, out)
	assert.Equal(t, "Organization", ld["@type"])
	assert.Equal(t, "Snow Shop", ld["name"])
	assert.Equal(t, storeURL, ld["url"])
}

func TestRenderProduct(t *testing.T) {
	out := render(t, TypeProduct, Data{
		"title":       "The Board",
		"description": "Plain description",
		"seo":         map[string]any{"title": "Best Board", "description": ""},
		"handle":      "the-board",
		"vendor":      "Snowdevil",
		"images": []any{
			map[string]any{"url": "https://cdn.example/board.png", "altText": "Board", "width": 800, "height": 600},
		},
		"variants": []any{
			map[string]any{"id": "v1", "sku": "B-1", "availableForSale": false, "price": map[string]any{"amount": "10", "currencyCode": "USD"}},
			map[string]any{"id": "v2", "sku": "B-2", "availableForSale": true, "price": map[string]any{"amount": "12.5", "currencyCode": "USD"}},
		},
	})

	assert.Contains(t, out, "<title>Best Board</title>")
	assert.Contains(t, out, `<meta name="description" content="Plain description">`)
	assert.Contains(t, out, `<meta property="og:type" content="og:product">`)
	assert.Contains(t, out, `<meta property="og:image" content="https://cdn.example/board.png">`)
	assert.Contains(t, out, `<meta property="og:image:width" content="800">`)
	assert.Contains(t, out, `<meta property="og:price:amount" content="10.00">`)

	ld := jsonLD(t, out)
	assert.Equal(t, "Product", ld["@type"])
	assert.Equal(t, "Best Board", ld["name"])
	assert.Equal(t, "B-1", ld["sku"])
	assert.Equal(t, map[string]any{"@type": "Thing", "name": "Snowdevil"}, ld["brand"])

	offers, ok := ld["offers"].([]any)
	require.True(t, ok)
	require.Len(t, offers, 2)
	first := offers[0].(map[string]any)
	second := offers[1].(map[string]any)
	assert.Equal(t, "https://schema.org/OutOfStock", first["availability"])
	assert.Equal(t, "https://schema.org/InStock", second["availability"])
	assert.Equal(t, "12.50", second["price"])
	assert.Equal(t, "https://store-name.com?variant=v2", second["url"])
}

func TestRenderProduct_EscapesScriptBreakout(t *testing.T) {
	out := render(t, TypeProduct, Data{"title": "</script><script>alert(1)</script>"})
	assert.NotContains(t, out, "<script>alert(1)")
}

func TestRenderCollection(t *testing.T) {
	out := render(t, TypeCollection, Data{
		"title":       "Winter",
		"description": "Cold things",
		"seo":         map[string]any{"description": "All winter gear"},
		"image":       map[string]any{"url": "https://cdn.example/winter.png"},
	})

	assert.Contains(t, out, "<title>Winter</title>")
	assert.Contains(t, out, `<meta name="description" content="All winter gear">`)
	assert.Contains(t, out, `<meta property="og:image" content="https://cdn.example/winter.png">`)
	assert.NotContains(t, out, "og:url")
}

func TestRenderPage(t *testing.T) {
	out := render(t, TypePage, Data{"title": "fallbackTitle", "seo": map[string]any{}})
	assert.Contains(t, out, "<title>fallbackTitle</title>")
	assert.NotContains(t, out, `name="description"`)
}

func TestRender_MalformedPayloadStillRenders(t *testing.T) {
	out := render(t, TypePage, Data{"title": "About", "seo": "not-an-object"})
	assert.Contains(t, out, "<title>About</title>")
}
