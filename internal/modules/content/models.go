package content

import "time"

type Collection struct {
	ID             string `gorm:"primaryKey;type:char(36)"`
	Handle         string `gorm:"type:varchar(255);not null;uniqueIndex:ux_collections_handle"`
	Title          string `gorm:"type:varchar(255);not null"`
	Description    string `gorm:"type:text"`
	SeoTitle       string `gorm:"type:varchar(255)"`
	SeoDescription string `gorm:"type:text"`
	ImageURL       string `gorm:"type:varchar(1024)"`
	ImageAlt       string `gorm:"type:varchar(255)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Collection) TableName() string { return "collections" }

type Page struct {
	ID             string `gorm:"primaryKey;type:char(36)"`
	Handle         string `gorm:"type:varchar(255);not null;uniqueIndex:ux_pages_handle"`
	Title          string `gorm:"type:varchar(255);not null"`
	Body           string `gorm:"type:mediumtext"`
	SeoTitle       string `gorm:"type:varchar(255)"`
	SeoDescription string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Page) TableName() string { return "pages" }
