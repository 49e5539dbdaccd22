// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/adapter/http/response"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// RoleHandler handles role management HTTP requests.
// RoleHandler обрабатывает HTTP запросы управления ролями.
type RoleHandler struct {
	roleService port.RoleService // Role service / Сервис ролей
	logger      *logger.Logger   // Logger instance / Экземпляр логгера
}

// NewRoleHandler creates a new RoleHandler instance.
// NewRoleHandler создаёт новый экземпляр RoleHandler.
func NewRoleHandler(roleService port.RoleService, log *logger.Logger) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		logger:      log.WithComponent("role_handler"),
	}
}

// RoleRequest represents the role create/update request body.
// RoleRequest представляет тело запроса создания/обновления роли.
type RoleRequest struct {
	Name string `json:"name" binding:"required"` // Role name / Название роли
}

// ListRoles handles GET /roles.
// ListRoles обрабатывает GET /roles.
// @Summary List roles
// @Description Retrieve roles, filtered and paginated
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Items per page"
// @Param filters query string false "JSON array of {field, value}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	filter, err := parseNameFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	roles, total, err := h.roleService.ListRoles(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	rows := make([]gin.H, 0, len(roles))
	for _, role := range roles {
		rows = append(rows, gin.H{
			"id":        role.ID,
			"name":      role.Name,
			"createdAt": role.CreatedAt,
		})
	}

	response.Paginated(c, "Roles cargados exitosamente", "roles", rows,
		"totalRoles", filter.Page, filter.PageSize, total)
}

// ListRolesSmall handles GET /roles-small.
// ListRolesSmall обрабатывает GET /roles-small.
//
// Returns id/name pairs for populating dropdowns.
// Возвращает пары id/name для выпадающих списков.
// @Summary List roles (compact)
// @Description Retrieve id/name pairs of all roles
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /roles-small [get]
func (h *RoleHandler) ListRolesSmall(c *gin.Context) {
	roles, err := h.roleService.ListRolesSmall(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	rows := make([]gin.H, 0, len(roles))
	for _, role := range roles {
		rows = append(rows, gin.H{"id": role.ID, "name": role.Name})
	}

	response.WithPayload(c, http.StatusOK, "Roles cargados exitosamente", gin.H{"roles": rows})
}

// GetRole handles GET /role/:roleId.
// GetRole обрабатывает GET /role/:roleId.
// @Summary Get role
// @Description Retrieve one role by id
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param roleId path int true "Role id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /role/{roleId} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, err := pathID(c, "roleId")
	if err != nil {
		response.Error(c, err)
		return
	}

	role, err := h.roleService.GetRole(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.WithPayload(c, http.StatusOK, "Rol cargado exitosamente", gin.H{
		"id":        role.ID,
		"name":      role.Name,
		"createdAt": role.CreatedAt,
	})
}

// CreateRole handles POST /role.
// CreateRole обрабатывает POST /role.
// @Summary Create role
// @Description Create a new role
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RoleRequest true "Role data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /role [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	if err := h.roleService.CreateRole(c.Request.Context(), req.Name); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Rol creado exitosamente")
}

// UpdateRole handles PUT /role/:roleId.
// UpdateRole обрабатывает PUT /role/:roleId.
// @Summary Update role
// @Description Rename an existing role
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param roleId path int true "Role id"
// @Param request body RoleRequest true "Role data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /role/{roleId} [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, err := pathID(c, "roleId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	if err := h.roleService.UpdateRole(c.Request.Context(), id, req.Name); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rol actualizado exitosamente")
}

// DeleteRole handles DELETE /role/:roleId.
// DeleteRole обрабатывает DELETE /role/:roleId.
//
// Roles are soft-deleted; deleting a deleted role is rejected.
// Роли удаляются мягко; удаление удалённой роли отклоняется.
// @Summary Delete role
// @Description Soft-delete a role
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param roleId path int true "Role id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /role/{roleId} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, err := pathID(c, "roleId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rol eliminado exitosamente")
}

// ExportRoles handles GET /roles/excel.
// ExportRoles обрабатывает GET /roles/excel.
// @Summary Export roles
// @Description Download every role as an XLSX workbook
// @Tags roles
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /roles/excel [get]
func (h *RoleHandler) ExportRoles(c *gin.Context) {
	data, err := h.roleService.ExportRoles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	serveWorkbook(c, "roles", data)
}
