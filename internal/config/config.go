// Package config provides application configuration management.
// Пакет config обеспечивает управление конфигурацией приложения.
//
// Configuration is loaded from environment variables and optional .env file
// with validation at startup. Uses cleanenv for type-safe configuration.
// Конфигурация загружается из переменных окружения и опционального .env файла
// с валидацией при запуске. Использует cleanenv для типобезопасной конфигурации.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all application configuration.
// Config содержит всю конфигурацию приложения.
type Config struct {
	Server    ServerConfig    `yaml:"server"`                                      // HTTP server settings / Настройки HTTP сервера
	Database  DatabaseConfig  `yaml:"database"`                                    // PostgreSQL connection / Подключение к PostgreSQL
	Redis     RedisConfig     `yaml:"redis"`                                       // Redis connection / Подключение к Redis
	JWT       JWTConfig       `yaml:"jwt"`                                         // JWT token settings / Настройки JWT токенов
	Roles     RolesConfig     `yaml:"roles"`                                       // Privileged role IDs / ID привилегированных ролей
	SMTP      SMTPConfig      `yaml:"smtp"`                                        // Outgoing mail settings / Настройки исходящей почты
	Uploads   UploadsConfig   `yaml:"uploads"`                                     // File upload settings / Настройки загрузки файлов
	App       AppConfig       `yaml:"app"`                                         // Application-level settings / Настройки уровня приложения
	Telemetry TelemetryConfig `yaml:"telemetry"`                                   // OpenTelemetry settings / Настройки OpenTelemetry
	Lockout   LockoutConfig   `yaml:"lockout"`                                     // Account lockout settings / Настройки блокировки аккаунта
	DevMode   bool            `env:"DEV_MODE" env-default:"true" yaml:"dev_mode"`  // Development mode / Режим разработки
}

// ServerConfig contains HTTP server configuration.
// ServerConfig содержит конфигурацию HTTP сервера.
type ServerConfig struct {
	Port string `env:"SERVER_PORT" env-default:"8080" yaml:"port"` // Server port / Порт сервера
}

// DatabaseConfig contains PostgreSQL connection settings.
// DatabaseConfig содержит настройки подключения к PostgreSQL.
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" env-default:"localhost" yaml:"host"`                  // Database host / Хост БД
	Port     string `env:"DB_PORT" env-default:"5432" yaml:"port"`                       // Database port / Порт БД
	User     string `env:"DB_USER" env-default:"account_user" yaml:"user"`               // Database user / Пользователь БД
	Password string `env:"DB_PASSWORD" env-default:"account_password" yaml:"password"`   // Database password / Пароль БД
	DBName   string `env:"DB_NAME" env-default:"account_db" yaml:"dbname"`               // Database name / Имя БД
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable" yaml:"sslmode"`              // SSL mode / Режим SSL
}

// RedisConfig contains Redis connection settings.
// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" env-default:"localhost" yaml:"host"` // Redis host / Хост Redis
	Port     string `env:"REDIS_PORT" env-default:"6379" yaml:"port"`      // Redis port / Порт Redis
	Password string `env:"REDIS_PASSWORD" env-default:"" yaml:"password"`  // Redis password / Пароль Redis
	DB       int    `env:"REDIS_DB" env-default:"0" yaml:"db"`             // Redis database number / Номер БД Redis
}

// JWTConfig contains JWT token configuration.
// JWTConfig содержит конфигурацию JWT токенов.
//
// Access, refresh, and activation tokens are signed with separate HS256
// secrets so a leaked token of one class cannot be replayed as another.
// Access, refresh и activation токены подписываются отдельными HS256
// секретами, чтобы утёкший токен одного класса нельзя было выдать за другой.
type JWTConfig struct {
	AccessSecret       string `env:"JWT_ACCESS_SECRET" env-default:"access-secret-change-in-production" yaml:"access_secret"`             // Access token secret / Секрет access токена
	RefreshSecret      string `env:"JWT_REFRESH_SECRET" env-default:"refresh-secret-change-in-production" yaml:"refresh_secret"`          // Refresh token secret / Секрет refresh токена
	ActivationSecret   string `env:"JWT_ACTIVATION_SECRET" env-default:"activation-secret-change-in-production" yaml:"activation_secret"` // Activation token secret / Секрет activation токена
	AccessTokenTTL     int    `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15" yaml:"access_token_ttl"`                                       // Access token TTL in minutes / TTL access токена в минутах
	RefreshTokenTTL    int    `env:"JWT_REFRESH_TOKEN_TTL" env-default:"7" yaml:"refresh_token_ttl"`                                      // Refresh token TTL in days / TTL refresh токена в днях
	ActivationTokenTTL int    `env:"JWT_ACTIVATION_TOKEN_TTL" env-default:"24" yaml:"activation_token_ttl"`                               // Activation token TTL in hours / TTL activation токена в часах
}

// RolesConfig contains the numeric IDs of privileged roles.
// RolesConfig содержит числовые ID привилегированных ролей.
//
// Route-level authorization compares the authenticated user's role ID
// against these values.
// Авторизация на уровне маршрутов сравнивает ID роли аутентифицированного
// пользователя с этими значениями.
type RolesConfig struct {
	SuperAdminID int64 `env:"ROLE_SUPER_ADMIN_ID" env-default:"1" yaml:"super_admin_id"` // Super administrator role ID / ID роли суперадминистратора
	AdminID      int64 `env:"ROLE_ADMIN_ID" env-default:"2" yaml:"admin_id"`             // Administrator role ID / ID роли администратора
	UserID       int64 `env:"ROLE_USER_ID" env-default:"3" yaml:"user_id"`               // Default user role ID / ID роли обычного пользователя
}

// SMTPConfig contains outgoing mail configuration.
// SMTPConfig содержит конфигурацию исходящей почты.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" env-default:"localhost" yaml:"host"`              // SMTP host / Хост SMTP
	Port     int    `env:"SMTP_PORT" env-default:"587" yaml:"port"`                    // SMTP port / Порт SMTP
	Username string `env:"SMTP_USERNAME" env-default:"" yaml:"username"`               // SMTP username / Имя пользователя SMTP
	Password string `env:"SMTP_PASSWORD" env-default:"" yaml:"password"`               // SMTP password / Пароль SMTP
	From     string `env:"SMTP_FROM" env-default:"no-reply@localhost" yaml:"from"`     // Sender address / Адрес отправителя
	FromName string `env:"SMTP_FROM_NAME" env-default:"Account Service" yaml:"from_name"` // Sender display name / Отображаемое имя отправителя
}

// UploadsConfig contains file upload configuration.
// UploadsConfig содержит конфигурацию загрузки файлов.
type UploadsConfig struct {
	AvatarDir    string `env:"UPLOADS_AVATAR_DIR" env-default:"uploads/avatars" yaml:"avatar_dir"`         // Avatar storage dir / Каталог хранения аватаров
	CategoryDir  string `env:"UPLOADS_CATEGORY_DIR" env-default:"uploads/categories" yaml:"category_dir"`  // Category image dir / Каталог изображений категорий
	MaxSizeBytes int64  `env:"UPLOADS_MAX_SIZE_BYTES" env-default:"3145728" yaml:"max_size_bytes"`         // Max upload size / Макс. размер загрузки
}

// AppConfig contains application-level settings.
// AppConfig содержит настройки уровня приложения.
type AppConfig struct {
	APIURL           string `env:"API_URL" env-default:"http://localhost:8080/api/v1" yaml:"api_url"`        // Public API base URL / Публичный базовый URL API
	SupportEmail     string `env:"SUPPORT_EMAIL" env-default:"soporte@localhost" yaml:"support_email"`       // Contact form recipient / Получатель формы обратной связи
	ResetCodeTTL     int    `env:"RESET_CODE_TTL_MINUTES" env-default:"15" yaml:"reset_code_ttl"`            // Password reset code TTL in minutes / TTL кода сброса в минутах
	RateLimitRPS     int    `env:"RATE_LIMIT_RPS" env-default:"20" yaml:"rate_limit_rps"`                    // Requests per second per client / Запросов в секунду на клиента
	RateLimitBurst   int    `env:"RATE_LIMIT_BURST" env-default:"40" yaml:"rate_limit_burst"`                // Burst size / Размер всплеска
}

// LockoutConfig contains account lockout configuration.
// LockoutConfig содержит конфигурацию блокировки аккаунта.
type LockoutConfig struct {
	MaxAttempts     int `env:"LOCKOUT_MAX_ATTEMPTS" env-default:"5" yaml:"max_attempts"`          // Max failed attempts / Макс. неудачных попыток
	LockoutDuration int `env:"LOCKOUT_DURATION_MINUTES" env-default:"15" yaml:"lockout_duration"` // Lockout duration in minutes / Длительность блокировки в минутах
}

// TelemetryConfig contains OpenTelemetry configuration.
// TelemetryConfig содержит конфигурацию OpenTelemetry.
type TelemetryConfig struct {
	Enabled      bool   `env:"OTEL_ENABLED" env-default:"false" yaml:"enabled"`                     // Enable telemetry / Включить телеметрию
	OTLPEndpoint string `env:"OTEL_ENDPOINT" env-default:"localhost:4317" yaml:"otlp_endpoint"`     // OTLP endpoint / OTLP эндпоинт
	ServiceName  string `env:"OTEL_SERVICE_NAME" env-default:"account-service" yaml:"service_name"` // Service name / Имя сервиса
	Environment  string `env:"OTEL_ENVIRONMENT" env-default:"development" yaml:"environment"`       // Environment / Окружение
}

// DSN returns the PostgreSQL connection string.
// DSN возвращает строку подключения к PostgreSQL.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Load loads configuration from environment variables and optional .env file.
// Load загружает конфигурацию из переменных окружения и опционального .env файла.
//
// Configuration priority (highest to lowest):
// Приоритет конфигурации (от высшего к низшему):
//  1. Environment variables / Переменные окружения
//  2. .env file (if exists) / .env файл (если существует)
//  3. Default values / Значения по умолчанию
//
// Returns an error if required configuration is missing or invalid.
// Возвращает ошибку, если обязательная конфигурация отсутствует или некорректна.
func Load() (*Config, error) {
	var cfg Config

	// Try to load .env file if it exists (optional)
	// Пытаемся загрузить .env файл, если он существует (опционально)
	envFile := ".env"
	if _, err := os.Stat(envFile); err == nil {
		if err := cleanenv.ReadConfig(envFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read .env file: %w", err)
		}
	} else {
		// No .env file, read from environment only
		// Нет .env файла, читаем только из окружения
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment variables: %w", err)
		}
	}

	return &cfg, nil
}

// MustLoad loads configuration and panics on error.
// MustLoad загружает конфигурацию и паникует при ошибке.
//
// Use this in main() when configuration is critical for startup.
// Используйте в main(), когда конфигурация критична для запуска.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// GetDescription returns a description of all configuration parameters.
// GetDescription возвращает описание всех параметров конфигурации.
//
// Useful for generating help text or documentation.
// Полезно для генерации справочного текста или документации.
func GetDescription() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}
