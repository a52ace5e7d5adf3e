package products

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID             string `gorm:"primaryKey;type:char(36)"`
	Title          string `gorm:"type:varchar(255);not null"`
	Handle         string `gorm:"type:varchar(255);not null;uniqueIndex:ux_products_handle"`
	Description    string `gorm:"type:text"`
	Vendor         string `gorm:"type:varchar(255)"`
	Status         string `gorm:"type:varchar(32);not null;default:active"`
	SeoTitle       string `gorm:"type:varchar(255)"`
	SeoDescription string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Images   []Image   `gorm:"foreignKey:ProductID"`
	Variants []Variant `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }

// Variant order within a product is significant: the add-to-cart fallback
// picks by Position.
type Variant struct {
	ID               string         `gorm:"primaryKey;type:char(36)"`
	ProductID        string         `gorm:"type:char(36);not null;index:ix_variants_product_position,priority:1"`
	SKU              string         `gorm:"type:varchar(64)"`
	Title            string         `gorm:"type:varchar(255)"`
	Options          datatypes.JSON `gorm:"column:options_json"`
	PriceCents       int            `gorm:"not null"`
	Currency         string         `gorm:"type:char(3);not null"`
	Stock            int            `gorm:"not null;default:0"`
	AvailableForSale bool           `gorm:"not null"`
	Position         int            `gorm:"not null;default:0;index:ix_variants_product_position,priority:2"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Variant) TableName() string { return "product_variants" }

type Image struct {
	ID        string `gorm:"primaryKey;type:char(36)"`
	ProductID string `gorm:"type:char(36);not null;index"`
	URL       string `gorm:"type:varchar(1024);not null"`
	AltText   string `gorm:"type:varchar(255)"`
	Position  int    `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (Image) TableName() string { return "product_images" }

// VariantOptions is the decoded form of Variant.Options, e.g. {"color":"red","size":"M"}.
type VariantOptions map[string]string

func (v Variant) DecodedOptions() VariantOptions {
	opts := VariantOptions{}
	if len(v.Options) == 0 {
		return opts
	}
	if err := json.Unmarshal(v.Options, &opts); err != nil {
		return VariantOptions{}
	}
	return opts
}

// Label joins the option values ordered by option name, e.g. "red / M".
func (o VariantOptions) Label() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vals := make([]string, 0, len(keys))
	for _, k := range keys {
		if o[k] != "" {
			vals = append(vals, o[k])
		}
	}
	return strings.Join(vals, " / ")
}

// DisplayTitle is the variant title, falling back to its option values.
func (v Variant) DisplayTitle() string {
	if v.Title != "" {
		return v.Title
	}
	return v.DecodedOptions().Label()
}
