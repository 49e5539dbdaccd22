// Package main is the entry point for the Account Service API server.
// Пакет main является точкой входа для API сервера Account Service.
//
// The Account Service provides registration with email activation, JWT
// authentication with refresh rotation, and profile management.
// Account Service предоставляет регистрацию с email активацией, JWT
// аутентификацию с ротацией refresh токенов и управление профилями.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	rediscache "github.com/andrewhigh08/account-service/internal/adapter/cache/redis"
	"github.com/andrewhigh08/account-service/internal/adapter/http/handler"
	"github.com/andrewhigh08/account-service/internal/adapter/http/middleware"
	"github.com/andrewhigh08/account-service/internal/adapter/mail"
	postgresrepo "github.com/andrewhigh08/account-service/internal/adapter/repository/postgres"
	"github.com/andrewhigh08/account-service/internal/config"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/pkg/telemetry"
	"github.com/andrewhigh08/account-service/internal/port"
	"github.com/andrewhigh08/account-service/internal/service"
)

// main is the application entry point.
// main является точкой входа приложения.
//
// Initializes all dependencies and starts the HTTP server with graceful shutdown.
// Инициализирует все зависимости и запускает HTTP сервер с graceful shutdown.
func main() {
	// Load configuration / Загружаем конфигурацию
	// MustLoad panics if config is invalid, which is desired at startup
	// MustLoad паникует при невалидном конфиге, что желательно при запуске
	cfg := config.MustLoad()

	// Initialize logger / Инициализируем логгер
	log := logger.New(logger.Config{
		Level:     getEnv("LOG_LEVEL", "info"),
		Format:    getEnv("LOG_FORMAT", "json"),
		AddSource: true,
	})
	logger.SetDefault(log)

	// Initialize telemetry / Инициализируем телеметрию
	telemetryCfg := telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Environment:  cfg.Telemetry.Environment,
	}
	tp, err := telemetry.InitTelemetry(context.Background(), telemetryCfg)
	if err != nil {
		log.Error("failed to initialize telemetry", "error", err)
	} else if cfg.Telemetry.Enabled {
		log.Info("telemetry initialized", "endpoint", cfg.Telemetry.OTLPEndpoint)
	}

	// Initialize database connection / Инициализируем подключение к БД
	db, err := initDB(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}

	// Run schema migrations / Выполняем миграции схемы
	if err := postgresrepo.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", "error", err)
	}

	// Initialize Redis connection / Инициализируем подключение к Redis
	redisClient := initRedis(cfg, log)
	rateLimitCache := rediscache.NewRateLimitCache(redisClient)

	// Initialize repositories / Инициализируем репозитории
	// Users and sessions sit on the hot auth path and get circuit breakers.
	// Пользователи и сессии находятся на горячем пути аутентификации и
	// получают circuit breaker.
	cbCfg := postgresrepo.DefaultCircuitBreakerConfig()
	userRepo := postgresrepo.NewUserRepositoryWithCB(postgresrepo.NewUserRepository(db), cbCfg)
	sessionRepo := postgresrepo.NewSessionRepositoryWithCB(postgresrepo.NewSessionRepository(db), cbCfg)
	profileRepo := postgresrepo.NewProfileRepository(db)
	activationRepo := postgresrepo.NewActivationRepository(db)
	resetRepo := postgresrepo.NewPasswordResetRepository(db)
	roleRepo := postgresrepo.NewRoleRepository(db)
	categoryRepo := postgresrepo.NewCategoryRepository(db)
	correspondenceRepo := postgresrepo.NewCorrespondenceRepository(db)
	geoRepo := postgresrepo.NewGeoRepository(db)
	auditRepo := postgresrepo.NewAuditLogRepository(db)
	txManager := postgresrepo.NewTransactionManager(db)

	// Initialize outgoing mail / Инициализируем исходящую почту
	mailer, err := mail.NewSMTPMailer(cfg.SMTP, log)
	if err != nil {
		log.Fatal("failed to initialize mailer", "error", err)
	}

	// Initialize services / Инициализируем сервисы
	auditService := service.NewAuditService(auditRepo, log)
	tokenService := service.NewTokenService(cfg.JWT)

	authService := service.NewAuthService(userRepo, sessionRepo, tokenService, auditService,
		rateLimitCache, service.AuthServiceConfig{
			MaxLoginAttempts: cfg.Lockout.MaxAttempts,
			LockoutDuration:  time.Duration(cfg.Lockout.LockoutDuration) * time.Minute,
		}, log)
	registrationService := service.NewRegistrationService(userRepo, profileRepo, activationRepo,
		txManager, tokenService, mailer, auditService, cfg.Roles.UserID, cfg.App.APIURL, log)
	passwordService := service.NewPasswordService(userRepo, resetRepo, sessionRepo, mailer,
		auditService, time.Duration(cfg.App.ResetCodeTTL)*time.Minute, log)
	profileService := service.NewProfileService(userRepo, profileRepo,
		cfg.Uploads.AvatarDir, cfg.Uploads.MaxSizeBytes, log)
	userService := service.NewUserService(userRepo, profileRepo, roleRepo, activationRepo,
		txManager, auditService, log)
	roleService := service.NewRoleService(roleRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, cfg.Uploads.CategoryDir, log)
	correspondenceService := service.NewCorrespondenceService(profileRepo, correspondenceRepo, log)
	geoService := service.NewGeoService(geoRepo)
	contactService := service.NewContactService(mailer, cfg.App.SupportEmail, log)

	// Initialize HTTP handlers / Инициализируем HTTP обработчики
	deps := routerDeps{
		cfg:            cfg,
		userRepo:       userRepo,
		authService:    authService,
		health:         handler.NewHealthHandler(db, redisClient),
		auth:           handler.NewAuthHandler(authService, log),
		register:       handler.NewRegisterHandler(registrationService, log),
		password:       handler.NewPasswordHandler(passwordService, log),
		profile:        handler.NewProfileHandler(profileService, log),
		user:           handler.NewUserHandler(userService, log),
		role:           handler.NewRoleHandler(roleService, log),
		category:       handler.NewCategoryHandler(categoryService, log),
		correspondence: handler.NewCorrespondenceHandler(correspondenceService, log),
		geo:            handler.NewGeoHandler(geoService, log),
		contact:        handler.NewContactHandler(contactService, log),
	}

	router := setupRouter(deps)

	// Seed database with initial data / Заполняем БД начальными данными
	seeder := service.NewSeeder(db, cfg.Roles, log)
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Error("failed to seed database", "error", err)
	}

	// Configure HTTP server / Настраиваем HTTP сервер
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second, // Max time to read request / Макс. время чтения запроса
		WriteTimeout: 15 * time.Second, // Max time to write response / Макс. время записи ответа
		IdleTimeout:  60 * time.Second, // Max time for keep-alive / Макс. время keep-alive
	}

	// Start server in goroutine / Запускаем сервер в горутине
	go func() {
		log.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	// Graceful shutdown handling / Обработка graceful shutdown
	// Wait for interrupt signal / Ожидаем сигнал прерывания
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests time to complete
	// Даём время на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	// Shutdown telemetry / Завершаем телеметрию
	if tp != nil {
		if err := tp.Shutdown(ctx); err != nil {
			log.Error("failed to shutdown telemetry", "error", err)
		}
	}

	// Close database connection / Закрываем подключение к БД
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	// Close Redis connection / Закрываем подключение к Redis
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("server exited properly")
}

// initDB initializes the PostgreSQL database connection with connection pooling.
// initDB инициализирует подключение к PostgreSQL с пулом соединений.
func initDB(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool / Настраиваем пул соединений
	sqlDB.SetMaxIdleConns(10)           // Max idle connections / Макс. простаивающих соединений
	sqlDB.SetMaxOpenConns(100)          // Max open connections / Макс. открытых соединений
	sqlDB.SetConnMaxLifetime(time.Hour) // Connection max lifetime / Макс. время жизни соединения

	// Verify connection with ping / Проверяем соединение пингом
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return db, nil
}

// initRedis initializes the Redis client connection.
// initRedis инициализирует подключение клиента Redis.
func initRedis(cfg *config.Config, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Verify connection / Проверяем соединение
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := client.Ping(ctx).Err(); err != nil {
		cancel()
		log.Fatal("failed to connect to Redis", "error", err)
	}
	cancel()

	log.Info("redis connection established")
	return client
}

// routerDeps bundles everything setupRouter needs.
// routerDeps объединяет всё необходимое для setupRouter.
type routerDeps struct {
	cfg         *config.Config
	userRepo    port.UserRepository
	authService port.AuthService

	health         *handler.HealthHandler
	auth           *handler.AuthHandler
	register       *handler.RegisterHandler
	password       *handler.PasswordHandler
	profile        *handler.ProfileHandler
	user           *handler.UserHandler
	role           *handler.RoleHandler
	category       *handler.CategoryHandler
	correspondence *handler.CorrespondenceHandler
	geo            *handler.GeoHandler
	contact        *handler.ContactHandler
}

// setupRouter configures the Gin router with all routes and middleware.
// setupRouter настраивает роутер Gin со всеми маршрутами и middleware.
func setupRouter(d routerDeps) *gin.Engine {
	if !d.cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Configure trusted proxies to prevent IP spoofing via X-Forwarded-For
	// Настраиваем доверенные прокси для предотвращения IP-спуфинга через X-Forwarded-For
	// Only trust localhost proxies by default. Add your load balancer IPs in production.
	// По умолчанию доверяем только localhost прокси. Добавьте IP балансировщика в продакшене.
	if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		logger.Default().Error("failed to set trusted proxies", "error", err)
	}

	rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond:          float64(d.cfg.App.RateLimitRPS),
		Burst:                      d.cfg.App.RateLimitBurst,
		SensitiveAttemptsPerMinute: middleware.DefaultRateLimitConfig().SensitiveAttemptsPerMinute,
		SensitiveBurst:             middleware.DefaultRateLimitConfig().SensitiveBurst,
	})
	securityCfg := middleware.DefaultSecurityConfig()

	// Global middleware / Глобальные middleware
	router.Use(gin.Recovery())                              // Panic recovery / Восстановление после паники
	router.Use(middleware.RequestID())                      // Request ID / ID запроса
	router.Use(middleware.SecurityHeaders(securityCfg))     // Security headers / Заголовки безопасности
	router.Use(middleware.CORS(securityCfg))                // CORS / Кросс-доменные запросы
	router.Use(middleware.RateLimitMiddleware(rateLimiter)) // Global rate limiting / Глобальное ограничение частоты
	router.Use(middleware.Metrics())                        // Prometheus metrics / Метрики Prometheus
	router.Use(requestLogger())                             // Request logging / Логирование запросов

	// Health check endpoints for Kubernetes probes
	// Эндпоинты проверки здоровья для Kubernetes проб
	router.GET("/health/live", d.health.Live)
	router.GET("/health/ready", d.health.Ready)

	// Metrics endpoint for Prometheus / Эндпоинт метрик для Prometheus
	handler.RegisterMetrics(router)

	// Swagger documentation / Документация Swagger
	handler.RegisterSwagger(router)

	// Stricter limits on endpoints that send email or accept credentials
	// Более строгие лимиты на эндпоинтах, отправляющих почту или
	// принимающих учётные данные
	sensitive := middleware.SensitiveRateLimitMiddleware(rateLimiter)

	api := router.Group("/api/v1")

	// Public endpoints / Публичные эндпоинты
	api.POST("/sign-in", sensitive, d.auth.SignIn)
	api.POST("/refresh-token", d.auth.Refresh)
	api.POST("/sign-out", d.auth.SignOut)
	api.POST("/register", sensitive, d.register.Register)
	api.POST("/activate", d.register.Activate)
	api.POST("/generate-code", sensitive, d.password.GenerateCode)
	api.POST("/verify-code", sensitive, d.password.VerifyCode)
	api.POST("/send-contact", sensitive, d.contact.SendContact)
	api.GET("/categories-small", d.category.ListCategoriesSmall)
	api.GET("/countries", d.geo.ListCountries)
	api.GET("/departments/:countryId", d.geo.ListDepartments)

	// Endpoints for any authenticated user / Эндпоинты для любого
	// аутентифицированного пользователя
	authed := api.Group("")
	authed.Use(middleware.Authenticated(d.authService))
	authed.PATCH("/change-password", d.password.ChangePassword)
	authed.GET("/profile", d.profile.GetProfile)
	authed.PUT("/profile", d.profile.UpdateProfile)
	authed.POST("/avatar", d.profile.UploadAvatar)
	authed.GET("/avatar", d.profile.GetAvatar)
	authed.GET("/correspondence", d.correspondence.GetCorrespondence)
	authed.POST("/correspondence", d.correspondence.UpsertCorrespondence)

	// Super admin endpoints / Эндпоинты суперадминистратора
	superAdmin := api.Group("")
	superAdmin.Use(middleware.Authenticated(d.authService))
	superAdmin.Use(middleware.RequireRoles(d.userRepo, d.cfg.Roles.SuperAdminID))
	superAdmin.GET("/users", d.user.ListUsers)
	superAdmin.GET("/users/excel", d.user.ExportUsers)
	superAdmin.POST("/user", d.user.CreateUser)
	superAdmin.GET("/user/:userId", d.user.GetUser)
	superAdmin.PUT("/user/:userId", d.user.UpdateUser)
	superAdmin.PATCH("/user-status", d.user.SetStatus)
	superAdmin.GET("/roles", d.role.ListRoles)
	superAdmin.GET("/roles-small", d.role.ListRolesSmall)
	superAdmin.GET("/roles/excel", d.role.ExportRoles)
	superAdmin.GET("/role/:roleId", d.role.GetRole)
	superAdmin.POST("/role", d.role.CreateRole)
	superAdmin.PUT("/role/:roleId", d.role.UpdateRole)
	superAdmin.DELETE("/role/:roleId", d.role.DeleteRole)

	// Admin endpoints, shared with super admin / Эндпоинты администратора,
	// доступные и суперадминистратору
	admin := api.Group("")
	admin.Use(middleware.Authenticated(d.authService))
	admin.Use(middleware.RequireRoles(d.userRepo, d.cfg.Roles.AdminID, d.cfg.Roles.SuperAdminID))
	admin.GET("/categories", d.category.ListCategories)
	admin.GET("/categories/excel", d.category.ExportCategories)
	admin.GET("/category/:categoryId", d.category.GetCategory)
	admin.POST("/category", d.category.CreateCategory)
	admin.PUT("/category/:categoryId", d.category.UpdateCategory)
	admin.DELETE("/category/:categoryId", d.category.DeleteCategory)

	return router
}

// requestLogger returns a middleware that logs HTTP requests.
// requestLogger возвращает middleware, которое логирует HTTP запросы.
func requestLogger() gin.HandlerFunc {
	log := logger.Default()
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// Process request / Обрабатываем запрос
		c.Next()

		// Log after request completion / Логируем после завершения запроса
		log.LogRequest(
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}

// getEnv returns environment variable value or default if not set.
// getEnv возвращает значение переменной окружения или значение по умолчанию.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
