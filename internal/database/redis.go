package database

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// SeenCache is an optional Redis fast path in front of the store's
// existence check. It is never authoritative: keys are written only after
// the store has confirmed a listing, so a cold or flushed cache simply
// falls through to the store.
type SeenCache struct {
	client *redis.Client
	source string
}

// NewSeenCache creates a new Redis-backed seen-id cache
func NewSeenCache(addr, password string, db int, source string) (*SeenCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("Successfully connected to Redis")

	return &SeenCache{client: rdb, source: source}, nil
}

func (c *SeenCache) key(id int) string {
	return fmt.Sprintf("listing:%s:%d", c.source, id)
}

// Seen reports whether the id is already known to the cache.
func (c *SeenCache) Seen(ctx context.Context, id int) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(id)).Result()
	return n > 0, err
}

// MarkSeen records the id. Listings are never re-notified, so the key
// carries no expiry.
func (c *SeenCache) MarkSeen(ctx context.Context, id int) error {
	return c.client.Set(ctx, c.key(id), "1", 0).Err()
}

// Close closes the Redis connection
func (c *SeenCache) Close() error {
	return c.client.Close()
}
