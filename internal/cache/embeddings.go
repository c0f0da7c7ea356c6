// Package cache provides the explicitly-scoped store for tag-vocabulary
// embeddings used by tag suggestion. Entries carry a TTL so a changed
// vocabulary or embedding model rolls over without a restart.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type EmbeddingCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewEmbeddingCache(addr string, ttl time.Duration) (*EmbeddingCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewEmbeddingCacheWithClient(client, ttl), nil
}

// NewEmbeddingCacheWithClient wraps an existing Redis client.
func NewEmbeddingCacheWithClient(client *redis.Client, ttl time.Duration) *EmbeddingCache {
	return &EmbeddingCache{
		client: client,
		prefix: "embedding:",
		ttl:    ttl,
	}
}

func (c *EmbeddingCache) key(text string) string {
	return c.prefix + text
}

// Get returns the cached vector for text, with found=false on a miss or an
// expired entry.
func (c *EmbeddingCache) Get(ctx context.Context, text string) ([]float32, bool, error) {
	raw, err := c.client.Get(ctx, c.key(text)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get embedding: %w", err)
	}

	var vector []float32
	if err := json.Unmarshal([]byte(raw), &vector); err != nil {
		return nil, false, fmt.Errorf("unmarshal embedding: %w", err)
	}
	return vector, true, nil
}

func (c *EmbeddingCache) Set(ctx context.Context, text string, vector []float32) error {
	raw, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}
	if err := c.client.Set(ctx, c.key(text), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set embedding: %w", err)
	}
	return nil
}

// Invalidate drops a single entry.
func (c *EmbeddingCache) Invalidate(ctx context.Context, text string) error {
	if err := c.client.Del(ctx, c.key(text)).Err(); err != nil {
		return fmt.Errorf("invalidate embedding: %w", err)
	}
	return nil
}

func (c *EmbeddingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *EmbeddingCache) Close() error {
	return c.client.Close()
}
