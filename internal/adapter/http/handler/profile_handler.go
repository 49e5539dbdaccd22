// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/adapter/http/middleware"
	"github.com/andrewhigh08/account-service/internal/adapter/http/response"
	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// ProfileHandler handles profile and avatar HTTP requests of the caller.
// ProfileHandler обрабатывает HTTP запросы профиля и аватара вызывающего.
type ProfileHandler struct {
	profileService port.ProfileService // Profile service / Сервис профилей
	logger         *logger.Logger      // Logger instance / Экземпляр логгера
}

// NewProfileHandler creates a new ProfileHandler instance.
// NewProfileHandler создаёт новый экземпляр ProfileHandler.
func NewProfileHandler(profileService port.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         log.WithComponent("profile_handler"),
	}
}

// profilePayload flattens a user and its profile for wire responses.
// profilePayload объединяет пользователя и его профиль для ответов.
func profilePayload(user *domain.User, profile *domain.Profile) gin.H {
	return gin.H{
		"id":             user.ID,
		"email":          user.Email,
		"firstName":      profile.FirstName,
		"middleName":     profile.MiddleName,
		"lastName":       profile.LastName,
		"secondLastName": profile.SecondLastName,
		"dniType":        profile.DNIType,
		"dni":            profile.DNI,
		"prefix":         profile.Prefix,
		"mobile":         profile.Mobile,
		"avatar":         profile.Avatar,
	}
}

// GetProfile handles GET /profile.
// GetProfile обрабатывает GET /profile.
// @Summary Get own profile
// @Description Retrieve the authenticated user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserIDKey)

	user, profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.WithPayload(c, http.StatusOK, "Perfil cargado exitosamente", profilePayload(user, profile))
}

// UpdateProfileRequest represents the profile update request body.
// UpdateProfileRequest представляет тело запроса обновления профиля.
//
// The document and phone fields stay optional here too: this endpoint is
// where an account registered with the minimal form fills them in.
// Поля документа и телефона необязательны и здесь: на этом эндпоинте
// аккаунт, зарегистрированный минимальной формой, заполняет их.
type UpdateProfileRequest struct {
	FirstName      string  `json:"firstName" binding:"required"` // First name / Первое имя
	MiddleName     *string `json:"middleName"`                   // Middle name / Второе имя
	LastName       string  `json:"lastName" binding:"required"`  // Last name / Первая фамилия
	SecondLastName *string `json:"secondLastName"`               // Second last name / Вторая фамилия
	DNIType        *string `json:"dniType"`                      // Identity document type / Тип документа
	DNI            *string `json:"dni"`                          // Identity document number / Номер документа
	Prefix         *string `json:"prefix"`                       // Phone country prefix / Телефонный префикс
	Mobile         *string `json:"mobile"`                       // Mobile number / Мобильный номер
}

// UpdateProfile handles PUT /profile.
// UpdateProfile обрабатывает PUT /profile.
// @Summary Update own profile
// @Description Update the authenticated user's profile fields
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	userID := c.GetInt64(middleware.ContextUserIDKey)
	err := h.profileService.UpdateProfile(c.Request.Context(), userID, &domain.Profile{
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		SecondLastName: req.SecondLastName,
		DNIType:        req.DNIType,
		DNI:            req.DNI,
		Prefix:         req.Prefix,
		Mobile:         req.Mobile,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Perfil actualizado exitosamente")
}

// UploadAvatar handles POST /avatar.
// UploadAvatar обрабатывает POST /avatar.
//
// Accepts a multipart form with an `avatar` file field.
// Принимает multipart форму с файловым полем `avatar`.
// @Summary Upload avatar
// @Description Store the authenticated user's avatar image
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /avatar [post]
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "La imagen es obligatoria")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "La imagen es obligatoria")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "No fue posible leer la imagen")
		return
	}

	userID := c.GetInt64(middleware.ContextUserIDKey)
	if err := h.profileService.SaveAvatar(c.Request.Context(), userID, fileHeader.Filename, data); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Avatar actualizado exitosamente")
}

// GetAvatar handles GET /avatar.
// GetAvatar обрабатывает GET /avatar.
//
// Streams the stored avatar file of the authenticated user.
// Отдаёт сохранённый файл аватара аутентифицированного пользователя.
// @Summary Get avatar
// @Description Stream the authenticated user's avatar image
// @Tags profile
// @Produce octet-stream
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /avatar [get]
func (h *ProfileHandler) GetAvatar(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserIDKey)

	path, err := h.profileService.AvatarPath(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.File(path)
}
