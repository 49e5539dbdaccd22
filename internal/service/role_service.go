package service

import (
	"context"
	"time"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// RoleService implements port.RoleService interface.
// RoleService реализует интерфейс port.RoleService.
type RoleService struct {
	roleRepo port.RoleRepository // Role repository / Репозиторий ролей
	logger   *logger.Logger      // Logger instance / Экземпляр логгера
}

// NewRoleService creates a new RoleService instance.
// NewRoleService создаёт новый экземпляр RoleService.
func NewRoleService(roleRepo port.RoleRepository, log *logger.Logger) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		logger:   log.WithComponent("role_service"),
	}
}

// CreateRole creates a new role.
// CreateRole создаёт новую роль.
func (s *RoleService) CreateRole(ctx context.Context, name string) error {
	log := s.logger.WithContext(ctx)

	role := &domain.Role{Name: name}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return err
	}

	log.Info("role created", "role_id", role.ID, "name", name)
	return nil
}

// GetRole retrieves a role by id.
// GetRole получает роль по id.
func (s *RoleService) GetRole(ctx context.Context, id int64) (*domain.Role, error) {
	return s.roleRepo.FindByID(ctx, id)
}

// UpdateRole renames a role.
// UpdateRole переименовывает роль.
func (s *RoleService) UpdateRole(ctx context.Context, id int64, name string) error {
	log := s.logger.WithContext(ctx)

	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	role.Name = name
	if err := s.roleRepo.Update(ctx, role); err != nil {
		return err
	}

	log.Info("role updated", "role_id", id, "name", name)
	return nil
}

// DeleteRole soft-deletes a role.
// DeleteRole мягко удаляет роль.
//
// Deleting an already deleted role is reported as a state error, not as
// a missing resource.
// Удаление уже удалённой роли считается ошибкой состояния, а не
// отсутствующим ресурсом.
func (s *RoleService) DeleteRole(ctx context.Context, id int64) error {
	log := s.logger.WithContext(ctx)

	role, err := s.roleRepo.FindByIDUnscoped(ctx, id)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeNotFound {
			return apperror.NotFound("Rol no encontrado")
		}
		return err
	}
	if role.DeletedAt.Valid {
		return apperror.Forbidden("El rol ya había sido eliminado")
	}

	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("role deleted", "role_id", id)
	return nil
}

// ListRoles retrieves roles with filtering and pagination.
// ListRoles получает роли с фильтрацией и пагинацией.
func (s *RoleService) ListRoles(ctx context.Context, filter port.NameFilter) ([]domain.Role, int64, error) {
	return s.roleRepo.List(ctx, filter)
}

// ListRolesSmall retrieves id/name pairs for dropdowns.
// ListRolesSmall получает пары id/name для выпадающих списков.
func (s *RoleService) ListRolesSmall(ctx context.Context) ([]domain.Role, error) {
	return s.roleRepo.ListAll(ctx)
}

// ExportRoles renders every role into an XLSX workbook.
// ExportRoles выгружает все роли в книгу XLSX.
func (s *RoleService) ExportRoles(ctx context.Context) ([]byte, error) {
	roles, err := s.roleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(roles))
	for _, r := range roles {
		rows = append(rows, []interface{}{r.ID, r.Name, r.CreatedAt.Format(time.DateOnly)})
	}

	return buildWorkbook("Roles", []string{"ID", "Nombre", "Fecha de creación"}, rows)
}
