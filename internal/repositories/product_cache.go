package repository

import (
	"context"
	"log/slog"

	"github.com/nutrikart/cart-engine/internal/cache"
	"github.com/nutrikart/cart-engine/internal/models"
)

type cachedProductRepository struct {
	inner ProductRepository
	cache cache.Cache
}

// NewCachedProductRepo wraps a catalog repository with a read-through cache.
// Cache failures fall back to the database; a stale price is bounded by the
// cache's default TTL.
func NewCachedProductRepo(inner ProductRepository, c cache.Cache) ProductRepository {
	return &cachedProductRepository{inner: inner, cache: c}
}

func (r *cachedProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	key := cache.Key(cache.ProductKeyPrefix, id)

	product := &models.Product{}

	found, err := r.cache.Get(ctx, key, product)
	if err != nil {
		slog.Warn("Product cache read failed, falling back to database",
			slog.String("productId", id),
			slog.String("error", err.Error()))
	} else if found {
		return product, nil
	}

	product, err = r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, product, 0); err != nil {
		slog.Warn("Product cache write failed",
			slog.String("productId", id),
			slog.String("error", err.Error()))
	}

	return product, nil
}
