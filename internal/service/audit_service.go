package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// AuditService implements port.AuditService interface.
// AuditService реализует интерфейс port.AuditService.
//
// Provides audit logging for tracking user actions for security,
// compliance, and debugging purposes.
// Предоставляет аудит-логирование для отслеживания действий пользователей
// в целях безопасности, соответствия требованиям и отладки.
type AuditService struct {
	auditRepo port.AuditLogRepository // Audit log repository / Репозиторий аудит-лога
	logger    *logger.Logger          // Logger instance / Экземпляр логгера
}

// NewAuditService creates a new AuditService instance.
// NewAuditService создаёт новый экземпляр AuditService.
func NewAuditService(auditRepo port.AuditLogRepository, log *logger.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    log.WithComponent("audit_service"),
	}
}

// LogAction logs an action to the audit trail.
// LogAction записывает действие в аудит-лог.
func (s *AuditService) LogAction(ctx context.Context, userID int64, action, resourceType, resourceID string, details map[string]interface{}) error {
	log := s.logger.WithContext(ctx)

	// Serialize details to JSON / Сериализуем детали в JSON
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		log.Error("failed to marshal audit details", "error", err)
		return apperror.Internal("failed to marshal audit details", err)
	}

	auditLog := &domain.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      detailsJSON,
		CreatedAt:    time.Now(),
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		log.Error("failed to create audit log", "action", action, "error", err)
		return err
	}

	log.Debug("audit log created", "action", action, "resource_type", resourceType, "resource_id", resourceID)
	return nil
}

// GetUserAuditLogs retrieves recent audit log entries for a user.
// GetUserAuditLogs получает последние записи аудит-лога для пользователя.
func (s *AuditService) GetUserAuditLogs(ctx context.Context, userID int64, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 50 // Default limit / Лимит по умолчанию
	}
	return s.auditRepo.FindByUserID(ctx, userID, limit)
}
