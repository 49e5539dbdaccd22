// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Swagger API documentation metadata.
// Метаданные документации Swagger API.
// @title Account Service API
// @version 1.0
// @description Account backend providing registration, authentication and profile management

// @contact.name API Support
// @contact.url https://github.com/andrewhigh08/account-service

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// RegisterSwagger registers Swagger documentation routes.
// RegisterSwagger регистрирует маршруты документации Swagger.
//
// Swagger UI is available at /swagger/index.html.
// Swagger UI доступен по адресу /swagger/index.html.
func RegisterSwagger(router *gin.Engine) {
	// Serve Swagger UI at /swagger/* / Обслуживаем Swagger UI по /swagger/*
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),     // URL to swagger.json / URL к swagger.json
		ginSwagger.DefaultModelsExpandDepth(-1), // Hide models by default / Скрыть модели по умолчанию
		ginSwagger.PersistAuthorization(true),   // Remember auth token / Запомнить токен авторизации
	))
}
