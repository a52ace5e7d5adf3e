package content

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MikeOwino/hydrogen/internal/shared/apperr"
)

type Repository interface {
	CollectionByHandle(ctx context.Context, handle string) (Collection, error)
	PageByHandle(ctx context.Context, handle string) (Page, error)
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) CollectionByHandle(ctx context.Context, handle string) (Collection, error) {
	var c Collection
	err := r.db.WithContext(ctx).First(&c, "handle = ?", handle).Error
	return c, notFound(err, "Collection not found.")
}

func (r *Repo) PageByHandle(ctx context.Context, handle string) (Page, error) {
	var p Page
	err := r.db.WithContext(ctx).First(&p, "handle = ?", handle).Error
	return p, notFound(err, "Page not found.")
}

func notFound(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundErr(msg)
	}
	return apperr.Wrap(err)
}
