package cart

import (
	"time"

	"gorm.io/datatypes"
)

const StatusOpen = "open"

type Cart struct {
	ID        string `gorm:"primaryKey;type:char(36)"`
	Status    string `gorm:"type:varchar(16);not null;default:open"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Lines []Line `gorm:"foreignKey:CartID"`
}

func (Cart) TableName() string { return "carts" }

type Line struct {
	ID         string         `gorm:"primaryKey;type:char(36)"`
	CartID     string         `gorm:"type:char(36);not null;uniqueIndex:ux_cart_lines_cart_variant,priority:1"`
	VariantID  string         `gorm:"type:char(36);not null;uniqueIndex:ux_cart_lines_cart_variant,priority:2"`
	Quantity   int            `gorm:"not null"`
	Attributes datatypes.JSON `gorm:"column:attributes_json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Line) TableName() string { return "cart_lines" }
