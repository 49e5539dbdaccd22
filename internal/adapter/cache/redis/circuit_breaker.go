// Package redis provides Redis-based cache implementations with circuit breaker protection.
// Пакет redis предоставляет реализации кэша на базе Redis с защитой circuit breaker.
package redis

import (
	"context"
	"time"

	"github.com/andrewhigh08/account-service/internal/pkg/circuitbreaker"
	"github.com/andrewhigh08/account-service/internal/port"
)

// CircuitBreakerConfig holds configuration for cache circuit breakers.
// CircuitBreakerConfig содержит конфигурацию circuit breaker для кэша.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of failures before opening the circuit.
	// MaxFailures - количество сбоев до размыкания цепи.
	MaxFailures int

	// Timeout is the duration to wait before testing if service recovered.
	// Timeout - время ожидания перед проверкой восстановления сервиса.
	Timeout time.Duration

	// OnStateChange is called when circuit breaker state changes.
	// OnStateChange вызывается при изменении состояния circuit breaker.
	OnStateChange func(name string, from, to circuitbreaker.State)
}

// DefaultCircuitBreakerConfig returns default circuit breaker configuration for Redis.
// DefaultCircuitBreakerConfig возвращает конфигурацию circuit breaker по умолчанию для Redis.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures: 5,
		Timeout:     30 * time.Second,
	}
}

// RateLimitCacheWithCB wraps RateLimitCache with circuit breaker protection.
// RateLimitCacheWithCB оборачивает RateLimitCache с защитой circuit breaker.
//
// When Redis is unavailable the breaker fails open: counters read as zero
// and increments report the first attempt, so sign-ins keep working without
// lockout protection rather than failing outright.
// Когда Redis недоступен, breaker пропускает запросы: счётчики читаются как
// ноль, а инкременты сообщают первую попытку, поэтому входы продолжают
// работать без защиты от перебора, а не падают.
type RateLimitCacheWithCB struct {
	cache *RateLimitCache
	cb    *circuitbreaker.CircuitBreaker
}

// NewRateLimitCacheWithCB creates a new RateLimitCache with circuit breaker.
// NewRateLimitCacheWithCB создаёт новый RateLimitCache с circuit breaker.
func NewRateLimitCacheWithCB(cache *RateLimitCache, config CircuitBreakerConfig) *RateLimitCacheWithCB {
	cbConfig := circuitbreaker.Config{
		Name:                "redis-ratelimit-cache",
		MaxFailures:         config.MaxFailures,
		Timeout:             config.Timeout,
		MaxHalfOpenRequests: 1,
		OnStateChange:       config.OnStateChange,
	}
	return &RateLimitCacheWithCB{
		cache: cache,
		cb:    circuitbreaker.New(cbConfig),
	}
}

// Increment increments a rate limit counter with circuit breaker protection.
// Increment увеличивает счётчик rate limit с защитой circuit breaker.
func (c *RateLimitCacheWithCB) Increment(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	count, err := circuitbreaker.ExecuteWithResult(ctx, c.cb, func(ctx context.Context) (int64, error) {
		return c.cache.Increment(ctx, key, expiration)
	})
	if err != nil {
		if circuitbreaker.IsCircuitBreakerError(err) {
			return 1, nil //nolint:nilerr // fail open when Redis is down
		}
		return 0, err
	}
	return count, nil
}

// GetCount retrieves current count with circuit breaker protection.
// GetCount получает текущий счётчик с защитой circuit breaker.
func (c *RateLimitCacheWithCB) GetCount(ctx context.Context, key string) (int64, error) {
	count, err := circuitbreaker.ExecuteWithResult(ctx, c.cb, func(ctx context.Context) (int64, error) {
		return c.cache.GetCount(ctx, key)
	})
	if err != nil {
		if circuitbreaker.IsCircuitBreakerError(err) {
			return 0, nil //nolint:nilerr // fail open when Redis is down
		}
		return 0, err
	}
	return count, nil
}

// Reset resets a rate limit counter with circuit breaker protection.
// Reset сбрасывает счётчик rate limit с защитой circuit breaker.
func (c *RateLimitCacheWithCB) Reset(ctx context.Context, key string) error {
	err := c.cb.Execute(ctx, func(ctx context.Context) error {
		return c.cache.Reset(ctx, key)
	})
	if err != nil && circuitbreaker.IsCircuitBreakerError(err) {
		return nil //nolint:nilerr // fail open when Redis is down
	}
	return err
}

// CircuitBreakerState returns the current state of the circuit breaker.
// CircuitBreakerState возвращает текущее состояние circuit breaker.
func (c *RateLimitCacheWithCB) CircuitBreakerState() circuitbreaker.State {
	return c.cb.State()
}

// Ensure interface compliance. / Проверка соответствия интерфейсу.
var _ port.RateLimitCache = (*RateLimitCacheWithCB)(nil)
