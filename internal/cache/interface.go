package cache

import (
	"context"
	"fmt"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id int64) string {
	return fmt.Sprintf("%s:%d", prefix, id)
}

const (
	DashboardKeyPrefix  = "dashboard"
	FeaturedKeyPrefix   = "featured"
	TopSellersKeyPrefix = "top_sellers"
)
