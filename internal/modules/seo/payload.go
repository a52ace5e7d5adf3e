package seo

import "github.com/go-viper/mapstructure/v2"

// Fields is the optional SEO override block on products, collections and pages.
type Fields struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
}

type Image struct {
	URL     string `mapstructure:"url"`
	AltText string `mapstructure:"altText"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
}

type Money struct {
	Amount       string `mapstructure:"amount"`
	CurrencyCode string `mapstructure:"currencyCode"`
}

type DefaultPage struct {
	Title         string `mapstructure:"title"`
	Description   string `mapstructure:"description"`
	TitleTemplate string `mapstructure:"titleTemplate"`
	Lang          string `mapstructure:"lang"`
	TwitterSite   string `mapstructure:"twitterSite"`
	URL           string `mapstructure:"url"`
}

// titleTemplate is the template applied to page titles, "%s - <title>"
// unless one is given.
func (p DefaultPage) titleTemplate() string {
	if p.TitleTemplate != "" {
		return p.TitleTemplate
	}
	if p.Title == "" {
		return ""
	}
	return "%s - " + p.Title
}

type HomePage struct {
	Title string `mapstructure:"title"`
	URL   string `mapstructure:"url"`
}

type ProductVariant struct {
	ID               string `mapstructure:"id"`
	Title            string `mapstructure:"title"`
	SKU              string `mapstructure:"sku"`
	AvailableForSale bool   `mapstructure:"availableForSale"`
	Price            Money  `mapstructure:"price"`
	Image            *Image `mapstructure:"image"`
}

type Product struct {
	Title       string           `mapstructure:"title"`
	Description string           `mapstructure:"description"`
	Seo         Fields           `mapstructure:"seo"`
	Handle      string           `mapstructure:"handle"`
	Vendor      string           `mapstructure:"vendor"`
	Images      []Image          `mapstructure:"images"`
	Variants    []ProductVariant `mapstructure:"variants"`
	URL         string           `mapstructure:"url"`
}

type Collection struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Seo         Fields `mapstructure:"seo"`
	Image       *Image `mapstructure:"image"`
}

type Page struct {
	Title string `mapstructure:"title"`
	Seo   Fields `mapstructure:"seo"`
}

// decode fills out from data. Decoding is lenient: mismatched fields are
// left at their zero value so a malformed payload still renders.
func decode(data Data, out any) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		Squash:           true,
	})
	if err != nil {
		return
	}
	_ = dec.Decode(map[string]any(data))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
