// Package cache implementa el cache de agregados del dashboard sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/jmarte/equimed-api/internal/application/ports"
	"github.com/jmarte/equimed-api/internal/domain/entity"
)

var _ ports.StatsCache = (*RedisStatsCache)(nil)

// RedisStatsCache guarda el DashboardStats serializado en JSON, una clave por
// organización, con TTL.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatsCache construye el cache con su propio cliente Redis.
func NewRedisStatsCache(addr, password string, db int, ttl time.Duration) *RedisStatsCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStatsCache{client: client, ttl: ttl}
}

// Ping verifica la conexión.
func (c *RedisStatsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}

func statsKey(organizationID string) string {
	return fmt.Sprintf("dashboard:stats:%s", organizationID)
}

// Get devuelve los agregados cacheados de la organización; nil, nil en miss.
func (c *RedisStatsCache) Get(ctx context.Context, organizationID string) (*entity.DashboardStats, error) {
	val, err := c.client.Get(ctx, statsKey(organizationID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats entity.DashboardStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Set guarda los agregados con el TTL configurado.
func (c *RedisStatsCache) Set(ctx context.Context, organizationID string, stats *entity.DashboardStats) error {
	if stats == nil {
		return nil
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey(organizationID), payload, c.ttl).Err()
}

// Invalidate borra la entrada de la organización (tras escrituras que cambian
// los agregados, si el caller quiere frescura inmediata).
func (c *RedisStatsCache) Invalidate(ctx context.Context, organizationID string) error {
	return c.client.Del(ctx, statsKey(organizationID)).Err()
}
