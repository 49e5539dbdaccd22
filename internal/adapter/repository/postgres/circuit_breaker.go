// Package postgres provides PostgreSQL-based repository implementations with circuit breaker protection.
// Пакет postgres предоставляет реализации репозиториев на базе PostgreSQL с защитой circuit breaker.
package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/circuitbreaker"
	"github.com/andrewhigh08/account-service/internal/port"
)

// CircuitBreakerConfig holds configuration for repository circuit breakers.
// CircuitBreakerConfig содержит конфигурацию circuit breaker для репозиториев.
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

// DefaultCircuitBreakerConfig returns default circuit breaker configuration for PostgreSQL.
// DefaultCircuitBreakerConfig возвращает конфигурацию circuit breaker по умолчанию для PostgreSQL.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures: 3,
		Timeout:     30 * time.Second,
	}
}

// ==================== User Repository with Circuit Breaker ====================

// UserRepositoryWithCB wraps UserRepository with circuit breaker protection.
// UserRepositoryWithCB оборачивает UserRepository с защитой circuit breaker.
//
// Every sign-in and token refresh touches the users table, so this is the
// first repository to protect when the database degrades.
// Каждый вход и обновление токена обращается к таблице users, поэтому этот
// репозиторий защищается первым при деградации базы данных.
type UserRepositoryWithCB struct {
	repo    *UserRepository
	cbRead  *circuitbreaker.CircuitBreaker
	cbWrite *circuitbreaker.CircuitBreaker
}

// NewUserRepositoryWithCB creates a new UserRepository with circuit breaker.
// NewUserRepositoryWithCB создаёт новый UserRepository с circuit breaker.
func NewUserRepositoryWithCB(repo *UserRepository, config CircuitBreakerConfig) *UserRepositoryWithCB {
	cbReadConfig := circuitbreaker.Config{
		Name:                "postgres-user-read",
		MaxFailures:         config.MaxFailures,
		Timeout:             config.Timeout,
		MaxHalfOpenRequests: 1,
		OnStateChange:       config.OnStateChange,
	}
	cbWriteConfig := circuitbreaker.Config{
		Name:                "postgres-user-write",
		MaxFailures:         config.MaxFailures,
		Timeout:             config.Timeout,
		MaxHalfOpenRequests: 1,
		OnStateChange:       config.OnStateChange,
	}
	return &UserRepositoryWithCB{
		repo:    repo,
		cbRead:  circuitbreaker.New(cbReadConfig),
		cbWrite: circuitbreaker.New(cbWriteConfig),
	}
}

// Create creates a new user with circuit breaker protection.
// Create создаёт нового пользователя с защитой circuit breaker.
func (r *UserRepositoryWithCB) Create(ctx context.Context, user *domain.User) error {
	return r.cbWrite.Execute(ctx, func(ctx context.Context) error {
		return r.repo.Create(ctx, user)
	})
}

// CreateTx creates a new user within a transaction.
// CreateTx создаёт нового пользователя в рамках транзакции.
// Transaction operations are not circuit-breaker protected individually
// since they are part of a larger transaction that is managed as a unit.
// Операции транзакций не защищаются circuit breaker индивидуально,
// так как они являются частью большей транзакции, управляемой как единица.
func (r *UserRepositoryWithCB) CreateTx(ctx context.Context, tx *gorm.DB, user *domain.User) error {
	return r.repo.CreateTx(ctx, tx, user)
}

// FindByID retrieves a user by ID with circuit breaker protection.
// FindByID получает пользователя по ID с защитой circuit breaker.
func (r *UserRepositoryWithCB) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cbRead, func(ctx context.Context) (*domain.User, error) {
		return r.repo.FindByID(ctx, id)
	})
}

// FindByEmail retrieves a user by email with circuit breaker protection.
// FindByEmail получает пользователя по email с защитой circuit breaker.
func (r *UserRepositoryWithCB) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cbRead, func(ctx context.Context) (*domain.User, error) {
		return r.repo.FindByEmail(ctx, email)
	})
}

// Update updates a user with circuit breaker protection.
// Update обновляет пользователя с защитой circuit breaker.
func (r *UserRepositoryWithCB) Update(ctx context.Context, user *domain.User) error {
	return r.cbWrite.Execute(ctx, func(ctx context.Context) error {
		return r.repo.Update(ctx, user)
	})
}

// List retrieves users with filtering and circuit breaker protection.
// List получает пользователей с фильтрацией и защитой circuit breaker.
func (r *UserRepositoryWithCB) List(ctx context.Context, filter port.UserFilter) ([]port.UserWithProfile, int64, error) {
	type result struct {
		rows  []port.UserWithProfile
		total int64
	}

	res, err := circuitbreaker.ExecuteWithResult(ctx, r.cbRead, func(ctx context.Context) (result, error) {
		rows, total, err := r.repo.List(ctx, filter)
		return result{rows: rows, total: total}, err
	})

	if err != nil {
		return nil, 0, err
	}

	return res.rows, res.total, nil
}

// ListAll retrieves all users with circuit breaker protection.
// ListAll получает всех пользователей с защитой circuit breaker.
func (r *UserRepositoryWithCB) ListAll(ctx context.Context) ([]port.UserWithProfile, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cbRead, func(ctx context.Context) ([]port.UserWithProfile, error) {
		return r.repo.ListAll(ctx)
	})
}

// ExistsByEmail checks email existence with circuit breaker protection.
// ExistsByEmail проверяет существование email с защитой circuit breaker.
func (r *UserRepositoryWithCB) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cbRead, func(ctx context.Context) (bool, error) {
		return r.repo.ExistsByEmail(ctx, email)
	})
}

// ReadCircuitBreakerState returns the current state of the read circuit breaker.
// ReadCircuitBreakerState возвращает текущее состояние read circuit breaker.
func (r *UserRepositoryWithCB) ReadCircuitBreakerState() circuitbreaker.State {
	return r.cbRead.State()
}

// WriteCircuitBreakerState returns the current state of the write circuit breaker.
// WriteCircuitBreakerState возвращает текущее состояние write circuit breaker.
func (r *UserRepositoryWithCB) WriteCircuitBreakerState() circuitbreaker.State {
	return r.cbWrite.State()
}

// Ensure interface compliance. / Проверка соответствия интерфейсу.
var _ port.UserRepository = (*UserRepositoryWithCB)(nil)

// ==================== Session Repository with Circuit Breaker ====================

// SessionRepositoryWithCB wraps SessionRepository with circuit breaker protection.
// SessionRepositoryWithCB оборачивает SessionRepository с защитой circuit breaker.
//
// The session ledger sits on the refresh path, same criticality as users.
// Журнал сессий находится на пути обновления токенов, та же критичность, что и users.
type SessionRepositoryWithCB struct {
	repo *SessionRepository
	cb   *circuitbreaker.CircuitBreaker
}

// NewSessionRepositoryWithCB creates a new SessionRepository with circuit breaker.
// NewSessionRepositoryWithCB создаёт новый SessionRepository с circuit breaker.
func NewSessionRepositoryWithCB(repo *SessionRepository, config CircuitBreakerConfig) *SessionRepositoryWithCB {
	cbConfig := circuitbreaker.Config{
		Name:                "postgres-session",
		MaxFailures:         config.MaxFailures,
		Timeout:             config.Timeout,
		MaxHalfOpenRequests: 1,
		OnStateChange:       config.OnStateChange,
	}
	return &SessionRepositoryWithCB{
		repo: repo,
		cb:   circuitbreaker.New(cbConfig),
	}
}

// Create records a session with circuit breaker protection.
// Create записывает сессию с защитой circuit breaker.
func (r *SessionRepositoryWithCB) Create(ctx context.Context, session *domain.Session) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error {
		return r.repo.Create(ctx, session)
	})
}

// FindByToken retrieves a session with circuit breaker protection.
// FindByToken получает сессию с защитой circuit breaker.
func (r *SessionRepositoryWithCB) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cb, func(ctx context.Context) (*domain.Session, error) {
		return r.repo.FindByToken(ctx, token)
	})
}

// IsRevoked checks revocation with circuit breaker protection.
// IsRevoked проверяет отзыв с защитой circuit breaker.
func (r *SessionRepositoryWithCB) IsRevoked(ctx context.Context, sessionID int64) (bool, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cb, func(ctx context.Context) (bool, error) {
		return r.repo.IsRevoked(ctx, sessionID)
	})
}

// Revoke revokes a session with circuit breaker protection.
// Revoke отзывает сессию с защитой circuit breaker.
func (r *SessionRepositoryWithCB) Revoke(ctx context.Context, sessionID int64) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error {
		return r.repo.Revoke(ctx, sessionID)
	})
}

// RevokeAllForUser revokes all user sessions with circuit breaker protection.
// RevokeAllForUser отзывает все сессии пользователя с защитой circuit breaker.
func (r *SessionRepositoryWithCB) RevokeAllForUser(ctx context.Context, userID int64) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error {
		return r.repo.RevokeAllForUser(ctx, userID)
	})
}

// CircuitBreakerState returns the current state of the circuit breaker.
// CircuitBreakerState возвращает текущее состояние circuit breaker.
func (r *SessionRepositoryWithCB) CircuitBreakerState() circuitbreaker.State {
	return r.cb.State()
}

// Ensure interface compliance. / Проверка соответствия интерфейсу.
var _ port.SessionRepository = (*SessionRepositoryWithCB)(nil)
