// Package response provides the wire format helpers shared by all handlers.
// Пакет response предоставляет хелперы формата ответов, общие для всех хендлеров.
//
// Every response body is a flat JSON object carrying a "message" field plus
// the payload fields at the top level; list endpoints add the pagination
// fields alongside the items.
// Каждое тело ответа - плоский JSON объект с полем "message" и полями
// полезной нагрузки на верхнем уровне; списочные эндпоинты добавляют рядом
// с элементами поля пагинации.
package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
)

// OK sends a 200 response carrying just a message.
// OK отправляет ответ 200, содержащий только сообщение.
func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Created sends a 201 response carrying just a message.
// Created отправляет ответ 201, содержащий только сообщение.
func Created(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// WithPayload sends a response whose payload fields sit next to the message.
// WithPayload отправляет ответ, поля полезной нагрузки которого находятся
// рядом с сообщением.
func WithPayload(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Paginated sends a list response with top-level pagination fields.
// Paginated отправляет списочный ответ с полями пагинации верхнего уровня.
//
// totalKey names the entity-specific total field, e.g. "totalUsers".
// totalKey задаёт имя поля общего количества, например "totalUsers".
func Paginated(c *gin.Context, message, itemsKey string, items interface{}, totalKey string, page, pageSize int, total int64) {
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		itemsKey:     items,
		"page":       page,
		"pageSize":   pageSize,
		"totalPages": TotalPages(total, pageSize),
		totalKey:     total,
	})
}

// TotalPages computes the page count for a total and page size.
// TotalPages вычисляет количество страниц для общего числа и размера страницы.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}

// Error sends an error response from an AppError.
// Error отправляет ответ с ошибкой из AppError.
// Automatically determines HTTP status code based on error type.
// Автоматически определяет HTTP статус-код на основе типа ошибки.
func Error(c *gin.Context, err error) {
	appErr := apperror.FromError(err)

	body := gin.H{"message": appErr.Message}

	// Internal errors surface their cause for diagnosability
	// Внутренние ошибки раскрывают свою причину для диагностики
	if appErr.HTTPStatus == http.StatusInternalServerError && appErr.Err != nil {
		body["details"] = appErr.Err.Error()
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	if appErr.HTTPStatus == http.StatusTooManyRequests {
		if retry, ok := appErr.Details["retry_after_seconds"].(int); ok {
			c.Header("Retry-After", strconv.Itoa(retry))
		}
	}

	c.JSON(appErr.HTTPStatus, body)
}

// BadRequest sends a 400 Bad Request response.
// BadRequest отправляет ответ 400 Bad Request.
func BadRequest(c *gin.Context, message string) {
	Error(c, apperror.BadRequest(message))
}

// Unauthorized sends a 401 Unauthorized response.
// Unauthorized отправляет ответ 401 Unauthorized.
func Unauthorized(c *gin.Context, message string) {
	Error(c, apperror.Unauthorized(message))
}

// Forbidden sends a 403 Forbidden response.
// Forbidden отправляет ответ 403 Forbidden.
func Forbidden(c *gin.Context, message string) {
	Error(c, apperror.Forbidden(message))
}

// NotFound sends a 404 Not Found response.
// NotFound отправляет ответ 404 Not Found.
func NotFound(c *gin.Context, message string) {
	Error(c, apperror.NotFound(message))
}

// TooManyRequests sends a 429 Too Many Requests response.
// TooManyRequests отправляет ответ 429 Too Many Requests.
func TooManyRequests(c *gin.Context, message string, retryAfter int) {
	Error(c, apperror.TooManyRequests(message, retryAfter))
}

// ValidationError sends a 400 response for validation errors.
// ValidationError отправляет ответ 400 для ошибок валидации.
func ValidationError(c *gin.Context, message string, details map[string]interface{}) {
	Error(c, apperror.ValidationError(message, details))
}
