// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/adapter/http/response"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// CategoryHandler handles category management HTTP requests.
// CategoryHandler обрабатывает HTTP запросы управления категориями.
//
// Create and update accept multipart forms because a category may carry an
// image alongside its fields.
// Создание и обновление принимают multipart формы, так как категория может
// нести изображение вместе с полями.
type CategoryHandler struct {
	categoryService port.CategoryService // Category service / Сервис категорий
	logger          *logger.Logger       // Logger instance / Экземпляр логгера
}

// NewCategoryHandler creates a new CategoryHandler instance.
// NewCategoryHandler создаёт новый экземпляр CategoryHandler.
func NewCategoryHandler(categoryService port.CategoryService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          log.WithComponent("category_handler"),
	}
}

// categoryImage reads the optional image file of a multipart form.
// categoryImage читает необязательный файл изображения multipart формы.
func categoryImage(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil // No file attached / Файл не приложен
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// ListCategories handles GET /categories.
// ListCategories обрабатывает GET /categories.
// @Summary List categories
// @Description Retrieve categories, filtered and paginated
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Items per page"
// @Param filters query string false "JSON array of {field, value}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	filter, err := parseNameFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	categories, total, err := h.categoryService.ListCategories(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	rows := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, gin.H{
			"id":        category.ID,
			"name":      category.Name,
			"url":       category.URL,
			"image":     category.Image,
			"createdAt": category.CreatedAt,
		})
	}

	response.Paginated(c, "Categorías cargadas exitosamente", "categories", rows,
		"totalCategories", filter.Page, filter.PageSize, total)
}

// ListCategoriesSmall handles GET /categories-small.
// ListCategoriesSmall обрабатывает GET /categories-small.
//
// Public endpoint returning id/name/url ordered by name.
// Публичный эндпоинт, возвращающий id/name/url в порядке имени.
// @Summary List categories (compact)
// @Description Retrieve id/name/url of all categories ordered by name
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /categories-small [get]
func (h *CategoryHandler) ListCategoriesSmall(c *gin.Context) {
	categories, err := h.categoryService.ListCategoriesSmall(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	rows := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, gin.H{
			"id":   category.ID,
			"name": category.Name,
			"url":  category.URL,
		})
	}

	response.WithPayload(c, http.StatusOK, "Categorías cargadas exitosamente", gin.H{"categories": rows})
}

// GetCategory handles GET /category/:categoryId.
// GetCategory обрабатывает GET /category/:categoryId.
// @Summary Get category
// @Description Retrieve one category by id
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param categoryId path int true "Category id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /category/{categoryId} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := pathID(c, "categoryId")
	if err != nil {
		response.Error(c, err)
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.WithPayload(c, http.StatusOK, "Categoría cargada exitosamente", gin.H{
		"id":        category.ID,
		"name":      category.Name,
		"url":       category.URL,
		"image":     category.Image,
		"createdAt": category.CreatedAt,
	})
}

// CreateCategory handles POST /category.
// CreateCategory обрабатывает POST /category.
// @Summary Create category
// @Description Create a category with an optional image
// @Tags categories
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Category name"
// @Param url formData string true "Category URL slug"
// @Param image formData file false "Category image"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /category [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	name := c.PostForm("name")
	url := c.PostForm("url")
	if name == "" || url == "" {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	image, err := categoryImage(c)
	if err != nil {
		response.BadRequest(c, "No fue posible leer la imagen")
		return
	}

	if err := h.categoryService.CreateCategory(c.Request.Context(), name, url, image); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Categoría creada exitosamente")
}

// UpdateCategory handles PUT /category/:categoryId.
// UpdateCategory обрабатывает PUT /category/:categoryId.
// @Summary Update category
// @Description Update a category and optionally replace its image
// @Tags categories
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param categoryId path int true "Category id"
// @Param name formData string true "Category name"
// @Param url formData string true "Category URL slug"
// @Param image formData file false "Category image"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /category/{categoryId} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := pathID(c, "categoryId")
	if err != nil {
		response.Error(c, err)
		return
	}

	name := c.PostForm("name")
	url := c.PostForm("url")
	if name == "" || url == "" {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	image, err := categoryImage(c)
	if err != nil {
		response.BadRequest(c, "No fue posible leer la imagen")
		return
	}

	if err := h.categoryService.UpdateCategory(c.Request.Context(), id, name, url, image); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categoría actualizada exitosamente")
}

// DeleteCategory handles DELETE /category/:categoryId.
// DeleteCategory обрабатывает DELETE /category/:categoryId.
//
// Categories are soft-deleted; deleting a deleted category is rejected.
// Категории удаляются мягко; удаление удалённой категории отклоняется.
// @Summary Delete category
// @Description Soft-delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param categoryId path int true "Category id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /category/{categoryId} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := pathID(c, "categoryId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categoría eliminada exitosamente")
}

// ExportCategories handles GET /categories/excel.
// ExportCategories обрабатывает GET /categories/excel.
// @Summary Export categories
// @Description Download every category as an XLSX workbook
// @Tags categories
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /categories/excel [get]
func (h *CategoryHandler) ExportCategories(c *gin.Context) {
	data, err := h.categoryService.ExportCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	serveWorkbook(c, "categorias", data)
}
