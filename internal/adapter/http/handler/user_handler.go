// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/adapter/http/response"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// xlsxContentType is the MIME type of exported workbooks.
// xlsxContentType представляет MIME тип выгружаемых книг.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UserHandler handles administrative user management HTTP requests.
// UserHandler обрабатывает административные HTTP запросы управления пользователями.
type UserHandler struct {
	userService port.UserService // User service / Сервис пользователей
	logger      *logger.Logger   // Logger instance / Экземпляр логгера
}

// NewUserHandler creates a new UserHandler instance.
// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(userService port.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      log.WithComponent("user_handler"),
	}
}

// AdminUserRequest represents the administrative create/update request body.
// AdminUserRequest представляет тело административного запроса создания/обновления.
type AdminUserRequest struct {
	FirstName      string  `json:"firstName" binding:"required"`   // First name / Первое имя
	MiddleName     *string `json:"middleName"`                     // Middle name / Второе имя
	LastName       string  `json:"lastName" binding:"required"`    // Last name / Первая фамилия
	SecondLastName *string `json:"secondLastName"`                 // Second last name / Вторая фамилия
	DNIType        *string `json:"dniType"`                        // Identity document type / Тип документа
	DNI            *string `json:"dni"`                            // Identity document number / Номер документа
	Prefix         *string `json:"prefix"`                         // Phone country prefix / Телефонный префикс
	Mobile         *string `json:"mobile"`                         // Mobile number / Мобильный номер
	Email          string  `json:"email" binding:"required,email"` // Account email / Email аккаунта
	Password       string  `json:"password"`                       // Optional on update / Необязателен при обновлении
	RoleID         int64   `json:"roleId" binding:"required"`      // Role reference / Ссылка на роль
}

func (r *AdminUserRequest) toPort() *port.AdminUserRequest {
	return &port.AdminUserRequest{
		FirstName:      r.FirstName,
		MiddleName:     r.MiddleName,
		LastName:       r.LastName,
		SecondLastName: r.SecondLastName,
		DNIType:        r.DNIType,
		DNI:            r.DNI,
		Prefix:         r.Prefix,
		Mobile:         r.Mobile,
		Email:          r.Email,
		Password:       r.Password,
		RoleID:         r.RoleID,
	}
}

// userRow flattens one user with its profile for list responses.
// userRow объединяет пользователя с профилем для списочных ответов.
func userRow(u port.UserWithProfile) gin.H {
	return gin.H{
		"id":             u.User.ID,
		"email":          u.User.Email,
		"activated":      u.User.Activated,
		"roleId":         u.User.RoleID,
		"firstName":      u.Profile.FirstName,
		"middleName":     u.Profile.MiddleName,
		"lastName":       u.Profile.LastName,
		"secondLastName": u.Profile.SecondLastName,
		"dniType":        u.Profile.DNIType,
		"dni":            u.Profile.DNI,
		"prefix":         u.Profile.Prefix,
		"mobile":         u.Profile.Mobile,
		"createdAt":      u.User.CreatedAt,
	}
}

// ListUsers handles GET /users.
// ListUsers обрабатывает GET /users.
//
// Supports page/pageSize and a JSON `filters` array over id, name, email and
// dni; a null dni value selects users without a document number.
// Поддерживает page/pageSize и JSON массив `filters` по id, name, email и
// dni; значение dni null выбирает пользователей без номера документа.
// @Summary List users
// @Description Retrieve users with profiles, filtered and paginated
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Items per page"
// @Param filters query string false "JSON array of {field, value}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	filter, err := parseUserFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	rows := make([]gin.H, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow(u))
	}

	response.Paginated(c, "Usuarios cargados exitosamente", "users", rows,
		"totalUsers", filter.Page, filter.PageSize, total)
}

// CreateUser handles POST /user.
// CreateUser обрабатывает POST /user.
// @Summary Create user
// @Description Create an already-activated user with its profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdminUserRequest true "User data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /user [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	if err := h.userService.CreateUser(c.Request.Context(), req.toPort()); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Usuario creado exitosamente")
}

// GetUser handles GET /user/:userId.
// GetUser обрабатывает GET /user/:userId.
// @Summary Get user
// @Description Retrieve one user with its profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /user/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, profile, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := profilePayload(user, profile)
	payload["activated"] = user.Activated
	payload["roleId"] = user.RoleID
	response.WithPayload(c, http.StatusOK, "Usuario cargado exitosamente", payload)
}

// UpdateUser handles PUT /user/:userId.
// UpdateUser обрабатывает PUT /user/:userId.
// @Summary Update user
// @Description Update a user's account and profile fields
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User id"
// @Param request body AdminUserRequest true "User data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /user/{userId} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	user, profile, err := h.userService.UpdateUser(c.Request.Context(), id, req.toPort())
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := profilePayload(user, profile)
	payload["activated"] = user.Activated
	payload["roleId"] = user.RoleID
	response.WithPayload(c, http.StatusOK, "Usuario actualizado exitosamente", payload)
}

// UserStatusRequest represents the activation toggle request body.
// UserStatusRequest представляет тело запроса переключения активации.
type UserStatusRequest struct {
	UserID    int64 `json:"userId" binding:"required"` // Target user / Целевой пользователь
	Activated *bool `json:"activated"`                 // Desired state / Желаемое состояние
}

// SetStatus handles PATCH /user-status.
// SetStatus обрабатывает PATCH /user-status.
//
// Activated is a pointer so an explicit false survives binding.
// Activated является указателем, чтобы явный false переживал binding.
// @Summary Toggle user activation
// @Description Activate or deactivate a user account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UserStatusRequest true "Status data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /user-status [patch]
func (h *UserHandler) SetStatus(c *gin.Context) {
	var req UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Activated == nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	if err := h.userService.SetStatus(c.Request.Context(), req.UserID, *req.Activated); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estado del usuario actualizado exitosamente")
}

// ExportUsers handles GET /users/excel.
// ExportUsers обрабатывает GET /users/excel.
// @Summary Export users
// @Description Download every user as an XLSX workbook
// @Tags users
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 403 {object} map[string]interface{}
// @Router /users/excel [get]
func (h *UserHandler) ExportUsers(c *gin.Context) {
	data, err := h.userService.ExportUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	serveWorkbook(c, "usuarios", data)
}

// serveWorkbook streams an XLSX payload with a dated attachment name.
// serveWorkbook отдаёт XLSX с именем вложения, содержащим дату.
func serveWorkbook(c *gin.Context, name string, data []byte) {
	fileName := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format(time.DateOnly))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, data)
}
