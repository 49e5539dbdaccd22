// Package port defines interfaces (ports) for the application's external dependencies.
// Пакет port определяет интерфейсы (порты) для внешних зависимостей приложения.
package port

import (
	"context"
	"time"
)

// RateLimitCache defines the interface for rate limiting operations.
// RateLimitCache определяет интерфейс для операций ограничения частоты запросов.
//
// Rate limiting protects the API from abuse by limiting the number
// of requests a client can make in a time window. The same counters
// back the sign-in lockout.
// Ограничение частоты защищает API от злоупотреблений, ограничивая
// количество запросов клиента за период времени. Те же счётчики
// обеспечивают блокировку входа.
type RateLimitCache interface {
	// Increment increments a counter and returns the new value.
	// Increment увеличивает счётчик и возвращает новое значение.
	// Sets expiration if this is a new key.
	// Устанавливает время истечения, если это новый ключ.
	Increment(ctx context.Context, key string, expiration time.Duration) (int64, error)

	// GetCount retrieves the current count for a rate limit key.
	// GetCount получает текущее значение счётчика для ключа rate limit.
	GetCount(ctx context.Context, key string) (int64, error)

	// Reset resets the counter for a key (e.g., after successful sign-in).
	// Reset сбрасывает счётчик для ключа (например, после успешного входа).
	Reset(ctx context.Context, key string) error
}
