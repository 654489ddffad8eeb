package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	productKeyPrefix  = "product:%s"
	categoryListKey   = "categories"
	blogPostKeyPrefix = "blog:%s"
)

const (
	ProductTTL  = 30 * time.Minute
	CategoryTTL = 10 * time.Minute
	BlogPostTTL = 15 * time.Minute
)

func ProductKey(slug string) string {
	return fmt.Sprintf(productKeyPrefix, slug)
}

func CategoryListKey() string {
	return categoryListKey
}

func BlogPostKey(slug string) string {
	return fmt.Sprintf(blogPostKeyPrefix, slug)
}

// GetJSON reads a cached value into dest. Returns false on miss, nil
// client, or any decode failure (a broken entry is treated as a miss).
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			// counted by the metrics hook; a cache error is never fatal
			return false
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores a value under key with the given TTL. Errors are ignored;
// the cache is best-effort.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

// Invalidate removes a key.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProduct(ctx context.Context, slug string) {
	Invalidate(ctx, ProductKey(slug))
}

func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, CategoryListKey())
}

func InvalidateBlogPost(ctx context.Context, slug string) {
	Invalidate(ctx, BlogPostKey(slug))
}
