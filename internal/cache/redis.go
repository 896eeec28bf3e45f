package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/medifind/internal/models"
)

// PharmacyCache keeps single pharmacy lookups in Redis.
type PharmacyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewPharmacyCache(client *redis.Client, ttl time.Duration) *PharmacyCache {
	return &PharmacyCache{client: client, ttl: ttl}
}

func pharmacyKey(id uint) string {
	return fmt.Sprintf("pharmacy:%d", id)
}

// Get returns nil, nil on a miss.
func (c *PharmacyCache) Get(ctx context.Context, id uint) (*models.Pharmacy, error) {
	key := pharmacyKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var p models.Pharmacy
	if err := json.Unmarshal(data, &p); err != nil {
		c.client.Del(ctx, key)
		return nil, fmt.Errorf("failed to unmarshal pharmacy: %w", err)
	}
	return &p, nil
}

func (c *PharmacyCache) Set(ctx context.Context, p *models.Pharmacy) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal pharmacy: %w", err)
	}
	return c.client.Set(ctx, pharmacyKey(p.ID), data, c.ttl).Err()
}

func (c *PharmacyCache) Invalidate(ctx context.Context, id uint) error {
	return c.client.Del(ctx, pharmacyKey(id)).Err()
}

// Noop is used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, uint) (*models.Pharmacy, error) { return nil, nil }
func (Noop) Set(context.Context, *models.Pharmacy) error         { return nil }
func (Noop) Invalidate(context.Context, uint) error              { return nil }
