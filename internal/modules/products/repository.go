package products

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MikeOwino/hydrogen/internal/shared/apperr"
)

type Repository interface {
	ListActive(ctx context.Context, limit, offset int) ([]Product, error)
	GetByHandle(ctx context.Context, handle string) (Product, error)
}

type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) ListActive(ctx context.Context, limit, offset int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	var items []Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("status = ?", "active").
		Preload("Images", orderByPosition).
		Preload("Variants", orderByPosition).
		Order("updated_at desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *GormRepo) GetByHandle(ctx context.Context, handle string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("handle = ? AND status = ?", handle, "active").
		Preload("Images", orderByPosition).
		Preload("Variants", orderByPosition).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, apperr.NotFoundErr("Product not found.")
	}
	if err != nil {
		return Product{}, apperr.Wrap(err)
	}
	return p, nil
}

// variant fallbacks depend on this ordering
func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc, id asc")
}
