// Package postgres provides PostgreSQL-based repository implementations.
// Пакет postgres предоставляет реализации репозиториев на базе PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
)

// SessionRepository implements port.SessionRepository using PostgreSQL.
// SessionRepository реализует интерфейс port.SessionRepository с использованием PostgreSQL.
//
// Sessions form an append-only ledger: a session is never deleted, it is
// revoked by inserting a row into revoked_sessions. This keeps the full
// refresh history available for token reuse detection.
// Сессии образуют журнал только для добавления: сессия никогда не удаляется,
// она отзывается вставкой строки в revoked_sessions. Это сохраняет полную
// историю обновлений для обнаружения повторного использования токенов.
type SessionRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewSessionRepository creates a new SessionRepository instance.
// NewSessionRepository создаёт новый экземпляр SessionRepository.
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create records a new session in the ledger.
// Create записывает новую сессию в журнал.
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return apperror.Internal("failed to create session", err)
	}
	return nil
}

// FindByToken retrieves a session by the verbatim refresh token value.
// FindByToken получает сессию по дословному значению refresh токена.
func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Sesión no encontrada")
		}
		return nil, apperror.Internal("failed to find session", err)
	}
	return &session, nil
}

// IsRevoked reports whether the session has been revoked.
// IsRevoked сообщает, была ли сессия отозвана.
func (r *SessionRepository) IsRevoked(ctx context.Context, sessionID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.RevokedSession{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error

	if err != nil {
		return false, apperror.Internal("failed to check session revocation", err)
	}
	return count > 0, nil
}

// Revoke marks a session as revoked.
// Revoke помечает сессию как отозванную.
// Revoking an already revoked session is a no-op.
// Отзыв уже отозванной сессии является холостой операцией.
func (r *SessionRepository) Revoke(ctx context.Context, sessionID int64) error {
	revoked := domain.RevokedSession{SessionID: sessionID}
	err := r.db.WithContext(ctx).Create(&revoked).Error
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil
		}
		return apperror.Internal("failed to revoke session", err)
	}
	return nil
}

// RevokeAllForUser revokes every active session of a user.
// RevokeAllForUser отзывает все активные сессии пользователя.
// Used after a password reset to force re-authentication everywhere.
// Используется после сброса пароля для принудительной повторной аутентификации.
func (r *SessionRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO revoked_sessions (session_id, created_at)
		 SELECT s.id, CURRENT_TIMESTAMP FROM sessions s
		 WHERE s.user_id = ?
		   AND NOT EXISTS (SELECT 1 FROM revoked_sessions rs WHERE rs.session_id = s.id)`,
		userID,
	).Error
	if err != nil {
		return apperror.Internal("failed to revoke user sessions", err)
	}
	return nil
}
