package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartRepository is the session store behind the per-vendor cart: one JSON
// quantity map per vendor, living in Redis for the session TTL or until an
// explicit clear/checkout.
type CartRepository interface {
	Get(ctx context.Context, vendorID int64) (map[int64]int, error)
	Save(ctx context.Context, vendorID int64, items map[int64]int) error
	Clear(ctx context.Context, vendorID int64) error
}

type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepo(client *redis.Client, ttl time.Duration) CartRepository {
	return &cartRepository{client: client, ttl: ttl}
}

func cartKey(vendorID int64) string {
	return fmt.Sprintf("cart:%d", vendorID)
}

func (r *cartRepository) Get(ctx context.Context, vendorID int64) (map[int64]int, error) {

	data, err := r.client.Get(ctx, cartKey(vendorID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return map[int64]int{}, nil
		}
		return nil, fmt.Errorf("failed to get cart from redis: %w", err)
	}

	items := map[int64]int{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	return items, nil
}

func (r *cartRepository) Save(ctx context.Context, vendorID int64, items map[int64]int) error {

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(vendorID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart to redis: %w", err)
	}

	return nil
}

func (r *cartRepository) Clear(ctx context.Context, vendorID int64) error {

	if err := r.client.Del(ctx, cartKey(vendorID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart in redis: %w", err)
	}

	return nil
}
