// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/port"
)

// Pagination defaults for list endpoints.
// Значения пагинации по умолчанию для списочных эндпоинтов.
const (
	defaultPage     = 1
	defaultPageSize = 10
)

// filterItem is one entry of the `filters` query parameter, a JSON-encoded
// array of {field, value} objects.
// filterItem представляет один элемент query параметра `filters`,
// JSON-массива объектов {field, value}.
type filterItem struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

// parsePagination reads the page and pageSize query parameters.
// parsePagination читает query параметры page и pageSize.
//
// Non-numeric or non-positive values fall back to the defaults.
// Нечисловые и неположительные значения заменяются значениями по умолчанию.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		page = defaultPage
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

// parseFilters decodes the `filters` query parameter.
// parseFilters декодирует query параметр `filters`.
func parseFilters(c *gin.Context) ([]filterItem, error) {
	raw := c.Query("filters")
	if raw == "" {
		return nil, nil
	}

	var items []filterItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, apperror.BadRequest("Filtros inválidos")
	}
	return items, nil
}

// filterID converts a filter value into a numeric id.
// filterID преобразует значение фильтра в числовой id.
//
// JSON numbers arrive as float64, but clients also send ids as strings.
// Числа JSON приходят как float64, но клиенты также шлют id строками.
func filterID(value interface{}) (int64, error) {
	switch v := value.(type) {
	case float64:
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, apperror.BadRequest("El filtro id debe ser numérico")
		}
		return id, nil
	default:
		return 0, apperror.BadRequest("El filtro id debe ser numérico")
	}
}

// filterString renders a filter value as a string.
// filterString представляет значение фильтра строкой.
func filterString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseUserFilter builds the user list filter from query parameters.
// parseUserFilter строит фильтр списка пользователей из query параметров.
//
// A `dni` filter with a null value selects users without a document number.
// Фильтр `dni` со значением null выбирает пользователей без номера документа.
func parseUserFilter(c *gin.Context) (port.UserFilter, error) {
	filter := port.UserFilter{}
	filter.Page, filter.PageSize = parsePagination(c)

	items, err := parseFilters(c)
	if err != nil {
		return filter, err
	}

	for _, item := range items {
		switch item.Field {
		case "id":
			id, idErr := filterID(item.Value)
			if idErr != nil {
				return filter, idErr
			}
			filter.ID = &id
		case "name":
			filter.Name = filterString(item.Value)
		case "email":
			filter.Email = filterString(item.Value)
		case "dni":
			if item.Value == nil {
				filter.DNIEmpty = true
			} else {
				filter.DNI = filterString(item.Value)
			}
		}
	}
	return filter, nil
}

// parseNameFilter builds the id/name filter used by role and category lists.
// parseNameFilter строит фильтр id/name для списков ролей и категорий.
func parseNameFilter(c *gin.Context) (port.NameFilter, error) {
	filter := port.NameFilter{}
	filter.Page, filter.PageSize = parsePagination(c)

	items, err := parseFilters(c)
	if err != nil {
		return filter, err
	}

	for _, item := range items {
		switch item.Field {
		case "id":
			id, idErr := filterID(item.Value)
			if idErr != nil {
				return filter, idErr
			}
			filter.ID = &id
		case "name":
			filter.Name = filterString(item.Value)
		}
	}
	return filter, nil
}

// pathID parses a numeric path parameter.
// pathID парсит числовой параметр пути.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.BadRequest("El identificador debe ser numérico")
	}
	return id, nil
}
