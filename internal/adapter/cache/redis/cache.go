// Package redis provides Redis-based cache implementations.
// Пакет redis предоставляет реализации кэша на базе Redis.
//
// Refresh sessions live in PostgreSQL; Redis only holds transient counters
// (failed sign-in attempts, per-client request rates).
// Refresh сессии живут в PostgreSQL; Redis хранит только временные счётчики
// (неудачные попытки входа, частоту запросов клиентов).
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
)

// RateLimitCache implements port.RateLimitCache using Redis.
// RateLimitCache реализует интерфейс port.RateLimitCache с использованием Redis.
//
// Provides rate limiting functionality using Redis atomic counters.
// Предоставляет функциональность ограничения частоты запросов
// с использованием атомарных счётчиков Redis.
type RateLimitCache struct {
	client *redis.Client // Redis client / Клиент Redis
	prefix string        // Key prefix / Префикс ключа
}

// NewRateLimitCache creates a new RateLimitCache instance.
// NewRateLimitCache создаёт новый экземпляр RateLimitCache.
func NewRateLimitCache(client *redis.Client) *RateLimitCache {
	return &RateLimitCache{
		client: client,
		prefix: "ratelimit",
	}
}

// Increment increments a counter and returns the new value.
// Increment увеличивает счётчик и возвращает новое значение.
// Sets expiration if this is a new key.
// Устанавливает время истечения, если это новый ключ.
func (c *RateLimitCache) Increment(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	fullKey := fmt.Sprintf("%s:%s", c.prefix, key)

	// Use pipeline for atomic INCR + EXPIRE
	// Используем pipeline для атомарных INCR + EXPIRE
	pipe := c.client.Pipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, expiration)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, apperror.Internal("failed to increment rate limit counter", err)
	}

	return incr.Val(), nil
}

// GetCount retrieves the current count for a rate limit key.
// GetCount получает текущее значение счётчика для ключа rate limit.
func (c *RateLimitCache) GetCount(ctx context.Context, key string) (int64, error) {
	fullKey := fmt.Sprintf("%s:%s", c.prefix, key)
	val, err := c.client.Get(ctx, fullKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil // Key doesn't exist, count is 0 / Ключ не существует, счётчик равен 0
		}
		return 0, apperror.Internal("failed to get rate limit count", err)
	}
	return val, nil
}

// Reset resets the counter for a key.
// Reset сбрасывает счётчик для ключа.
// Use this after successful login to reset failed attempt counter.
// Используйте после успешного входа для сброса счётчика неудачных попыток.
func (c *RateLimitCache) Reset(ctx context.Context, key string) error {
	fullKey := fmt.Sprintf("%s:%s", c.prefix, key)
	if err := c.client.Del(ctx, fullKey).Err(); err != nil {
		return apperror.Internal("failed to reset rate limit counter", err)
	}
	return nil
}
