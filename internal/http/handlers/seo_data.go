package handlers

import (
	"github.com/MikeOwino/hydrogen/internal/config"
	"github.com/MikeOwino/hydrogen/internal/modules/content"
	"github.com/MikeOwino/hydrogen/internal/modules/products"
	"github.com/MikeOwino/hydrogen/internal/modules/seo"
	"github.com/MikeOwino/hydrogen/pkg/view"
)

func defaultSeoData(s config.Store) seo.Data {
	return seo.Data{
		"title":       s.Name,
		"description": s.Description,
		"lang":        s.Lang,
		"twitterSite": s.TwitterSite,
	}
}

func productSeoData(p products.Product) seo.Data {
	images := make([]any, 0, len(p.Images))
	for _, im := range p.Images {
		images = append(images, map[string]any{"url": im.URL, "altText": im.AltText})
	}
	variants := make([]any, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, map[string]any{
			"id":               v.ID,
			"title":            v.DisplayTitle(),
			"sku":              v.SKU,
			"availableForSale": v.AvailableForSale,
			"price": map[string]any{
				"amount":       view.AmountFromCents(v.PriceCents),
				"currencyCode": v.Currency,
			},
		})
	}
	return seo.Data{
		"title":       p.Title,
		"description": p.Description,
		"seo":         map[string]any{"title": p.SeoTitle, "description": p.SeoDescription},
		"handle":      p.Handle,
		"vendor":      p.Vendor,
		"images":      images,
		"variants":    variants,
	}
}

func collectionSeoData(c content.Collection) seo.Data {
	d := seo.Data{
		"title":       c.Title,
		"description": c.Description,
		"seo":         map[string]any{"title": c.SeoTitle, "description": c.SeoDescription},
	}
	if c.ImageURL != "" {
		d["image"] = map[string]any{"url": c.ImageURL, "altText": c.ImageAlt}
	}
	return d
}

func pageSeoData(p content.Page) seo.Data {
	return seo.Data{
		"title": p.Title,
		"seo":   map[string]any{"title": p.SeoTitle, "description": p.SeoDescription},
	}
}
