package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/nutrikart/cart-engine/internal/cache"
	"github.com/nutrikart/cart-engine/internal/models"
)

// SnapshotRepository persists the serialized cart per user so the cart
// survives a reload. Saved after every mutation, deleted on clear/logout.
type SnapshotRepository interface {
	Save(ctx context.Context, cart *models.Cart) error
	Load(ctx context.Context, userID string) (*models.Cart, bool, error)
	Delete(ctx context.Context, userID string) error
}

type snapshotRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewSnapshotRepo(c cache.Cache, ttl time.Duration) SnapshotRepository {
	return &snapshotRepository{cache: c, ttl: ttl}
}

func (r *snapshotRepository) Save(ctx context.Context, cart *models.Cart) error {
	key := cache.Key(cache.SnapshotKeyPrefix, cart.UserID)

	if err := r.cache.Set(ctx, key, cart, r.ttl); err != nil {
		return fmt.Errorf("saving cart snapshot: %w", err)
	}

	return nil
}

func (r *snapshotRepository) Load(ctx context.Context, userID string) (*models.Cart, bool, error) {
	key := cache.Key(cache.SnapshotKeyPrefix, userID)

	cart := &models.Cart{}

	found, err := r.cache.Get(ctx, key, cart)
	if err != nil {
		return nil, false, fmt.Errorf("loading cart snapshot: %w", err)
	}

	if !found {
		return nil, false, nil
	}

	return cart, true, nil
}

func (r *snapshotRepository) Delete(ctx context.Context, userID string) error {
	key := cache.Key(cache.SnapshotKeyPrefix, userID)

	if err := r.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("deleting cart snapshot: %w", err)
	}

	return nil
}
