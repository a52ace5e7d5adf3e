package products

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedRepository serves GetByHandle from a short-lived LRU. Cached products
// are shared between callers and must be treated as read-only.
type CachedRepository struct {
	Repository
	byHandle *expirable.LRU[string, Product]
}

func NewCachedRepository(next Repository, size int, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		Repository: next,
		byHandle:   expirable.NewLRU[string, Product](size, nil, ttl),
	}
}

func (r *CachedRepository) GetByHandle(ctx context.Context, handle string) (Product, error) {
	if p, ok := r.byHandle.Get(handle); ok {
		return p, nil
	}
	p, err := r.Repository.GetByHandle(ctx, handle)
	if err != nil {
		return Product{}, err
	}
	r.byHandle.Add(handle, p)
	return p, nil
}
