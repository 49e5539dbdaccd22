// Package domain contains core business entities and value objects.
// Пакет domain содержит основные бизнес-сущности и объекты-значения.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Audit action constants for account events.
// Константы действий аудита для событий аккаунта.
const (
	// AuditActionLoginSuccess indicates a successful sign-in.
	// AuditActionLoginSuccess указывает на успешный вход.
	AuditActionLoginSuccess = "auth.login.success"

	// AuditActionLoginFailed indicates a failed sign-in attempt.
	// AuditActionLoginFailed указывает на неудачную попытку входа.
	AuditActionLoginFailed = "auth.login.failed"

	// AuditActionLoginLocked indicates a sign-in attempt while locked out.
	// AuditActionLoginLocked указывает на попытку входа во время блокировки.
	AuditActionLoginLocked = "auth.login.locked"

	// AuditActionTokenRefresh indicates a refresh token rotation.
	// AuditActionTokenRefresh указывает на ротацию refresh токена.
	AuditActionTokenRefresh = "auth.token.refresh" //nolint:gosec // G101: This is an audit action name, not credentials

	// AuditActionTokenReuse indicates a revoked refresh token was presented again.
	// AuditActionTokenReuse указывает на повторное предъявление отозванного refresh токена.
	AuditActionTokenReuse = "auth.token.reuse" //nolint:gosec // G101: This is an audit action name, not credentials

	// AuditActionLogout indicates a user sign-out.
	// AuditActionLogout указывает на выход пользователя.
	AuditActionLogout = "auth.logout"

	// AuditActionPasswordChange indicates a password change.
	// AuditActionPasswordChange указывает на смену пароля.
	AuditActionPasswordChange = "auth.password.change"

	// AuditActionPasswordReset indicates a password reset via emailed code.
	// AuditActionPasswordReset указывает на сброс пароля через код из письма.
	AuditActionPasswordReset = "auth.password.reset"

	// AuditActionAccountActivated indicates an account was activated.
	// AuditActionAccountActivated указывает на активацию аккаунта.
	AuditActionAccountActivated = "account.activated"

	// AuditActionRegister indicates a new account registration.
	// AuditActionRegister указывает на регистрацию нового аккаунта.
	AuditActionRegister = "account.register"
)

// Audit resource type constants.
// Константы типов ресурсов аудита.
const (
	// AuditResourceTypeAuth represents authentication resource type.
	// AuditResourceTypeAuth представляет тип ресурса аутентификации.
	AuditResourceTypeAuth = "auth"

	// AuditResourceTypeUser represents user resource type.
	// AuditResourceTypeUser представляет тип ресурса пользователя.
	AuditResourceTypeUser = "user"
)

// User represents an account in the system.
// User представляет аккаунт в системе.
//
// Fields:
//   - ID: Unique identifier (primary key)
//   - Email: Account email (unique, used for authentication)
//   - PasswordHash: Bcrypt hash of the account password
//   - Activated: Whether the account has confirmed its email
//   - RoleID: Reference to the account role
//   - CreatedAt/UpdatedAt: Row timestamps
//
// Поля:
//   - ID: Уникальный идентификатор (первичный ключ)
//   - Email: Email аккаунта (уникальный, используется для аутентификации)
//   - PasswordHash: Bcrypt хэш пароля аккаунта
//   - Activated: Подтвердил ли аккаунт свой email
//   - RoleID: Ссылка на роль аккаунта
//   - CreatedAt/UpdatedAt: Временные метки строки
type User struct {
	ID           int64     `gorm:"primaryKey"`                       // Primary key / Первичный ключ
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null"` // Unique email / Уникальный email
	PasswordHash string    `gorm:"type:text;not null"`               // Bcrypt hash / Bcrypt хэш
	Activated    bool      `gorm:"not null;default:false"`           // Email confirmed / Email подтверждён
	RoleID       int64     `gorm:"not null;index"`                   // Role reference / Ссылка на роль
	CreatedAt    time.Time `gorm:"not null"`                         // Creation time / Время создания
	UpdatedAt    time.Time `gorm:"not null"`                         // Update time / Время обновления
}

// TableName returns the database table name for User entity.
// TableName возвращает имя таблицы в базе данных для сущности User.
func (User) TableName() string {
	return "users"
}

// Profile holds the personal data attached to a user account.
// Profile содержит персональные данные, привязанные к аккаунту пользователя.
//
// Only the first and last name are mandatory: the document and phone
// columns stay NULL until the user supplies them, so an absent dni is
// distinguishable from an empty one. Avatar stores the file name of the
// uploaded profile image, if any.
// Обязательны только имя и фамилия: колонки документа и телефона остаются
// NULL, пока пользователь их не заполнит, поэтому отсутствующий dni
// отличим от пустого. Avatar хранит имя файла загруженного изображения
// профиля, если оно есть.
type Profile struct {
	ID             int64     `gorm:"primaryKey"`                // Primary key / Первичный ключ
	UserID         int64     `gorm:"not null;uniqueIndex"`      // Owning user / Владелец
	FirstName      string    `gorm:"type:varchar(20);not null"` // First name / Первое имя
	MiddleName     *string   `gorm:"type:varchar(20)"`          // Middle name / Второе имя
	LastName       string    `gorm:"type:varchar(20);not null"` // Last name / Первая фамилия
	SecondLastName *string   `gorm:"type:varchar(20)"`          // Second last name / Вторая фамилия
	DNIType        *string   `gorm:"type:varchar(30)"`          // Identity document type / Тип документа
	DNI            *string   `gorm:"type:varchar(30)"`          // Identity document number / Номер документа
	Prefix         *string   `gorm:"type:varchar(4)"`           // Phone country prefix / Телефонный префикс
	Mobile         *string   `gorm:"type:varchar(15)"`          // Mobile number / Мобильный номер
	Avatar         *string   `gorm:"type:varchar(255)"`         // Avatar file name / Имя файла аватара
	CreatedAt      time.Time `gorm:"not null"`                  // Creation time / Время создания
	UpdatedAt      time.Time `gorm:"not null"`                  // Update time / Время обновления
}

// TableName returns the database table name for Profile entity.
// TableName возвращает имя таблицы в базе данных для сущности Profile.
func (Profile) TableName() string {
	return "profiles"
}

// Role represents an access role assigned to users.
// Role представляет роль доступа, назначаемую пользователям.
//
// Roles are soft-deleted: a deleted role keeps its row with DeletedAt set
// and is excluded from regular queries.
// Роли удаляются мягко: удалённая роль сохраняет строку с установленным
// DeletedAt и исключается из обычных запросов.
type Role struct {
	ID        int64          `gorm:"primaryKey"`                             // Primary key / Первичный ключ
	Name      string         `gorm:"type:varchar(100);uniqueIndex;not null"` // Unique name / Уникальное имя
	CreatedAt time.Time      `gorm:"not null"`                               // Creation time / Время создания
	UpdatedAt time.Time      `gorm:"not null"`                               // Update time / Время обновления
	DeletedAt gorm.DeletedAt `gorm:"index"`                                  // Soft delete / Мягкое удаление
}

// TableName returns the database table name for Role entity.
// TableName возвращает имя таблицы в базе данных для сущности Role.
func (Role) TableName() string {
	return "roles"
}

// Category represents a catalog category with an optional image.
// Category представляет категорию каталога с необязательным изображением.
type Category struct {
	ID        int64          `gorm:"primaryKey"`                             // Primary key / Первичный ключ
	Name      string         `gorm:"type:varchar(100);uniqueIndex;not null"` // Unique name / Уникальное имя
	URL       string         `gorm:"type:varchar(50);uniqueIndex;not null"`  // Unique URL slug / Уникальный URL
	Image     *string        `gorm:"type:varchar(255)"`                      // Image file name / Имя файла изображения
	CreatedAt time.Time      `gorm:"not null"`                               // Creation time / Время создания
	UpdatedAt time.Time      `gorm:"not null"`                               // Update time / Время обновления
	DeletedAt gorm.DeletedAt `gorm:"index"`                                  // Soft delete / Мягкое удаление
}

// TableName returns the database table name for Category entity.
// TableName возвращает имя таблицы в базе данных для сущности Category.
func (Category) TableName() string {
	return "categories"
}

// Session is the ledger row for one issued refresh token.
// Session представляет запись журнала для одного выданного refresh токена.
//
// Token stores the refresh JWT verbatim; JTI duplicates the jti claim shared
// by the access/refresh pair so a presented token can be checked against the
// ledger without trusting its own claims.
// Token хранит refresh JWT дословно; JTI дублирует claim jti, общий для
// пары access/refresh, чтобы предъявленный токен можно было сверить с
// журналом, не доверяя его собственным claims.
type Session struct {
	ID        int64     `gorm:"primaryKey"`          // Primary key / Первичный ключ
	UserID    int64     `gorm:"not null;index"`      // Owning user / Владелец
	Token     string    `gorm:"type:text;not null"`  // Refresh token / Refresh токен
	JTI       string    `gorm:"type:text;not null"`  // Shared token pair id / Общий id пары токенов
	CreatedAt time.Time `gorm:"not null"`            // Issue time / Время выдачи
	UpdatedAt time.Time `gorm:"not null"`            // Update time / Время обновления
}

// TableName returns the database table name for Session entity.
// TableName возвращает имя таблицы в базе данных для сущности Session.
func (Session) TableName() string {
	return "sessions"
}

// RevokedSession marks a session as revoked (rotated away or signed out).
// RevokedSession помечает сессию как отозванную (ротированную или закрытую).
//
// Presence of a row is the revocation; there is no reinstating a session.
// Наличие строки и есть отзыв; восстановление сессии не предусмотрено.
type RevokedSession struct {
	ID        int64     `gorm:"primaryKey"`            // Primary key / Первичный ключ
	SessionID int64     `gorm:"not null;uniqueIndex"`  // Revoked session / Отозванная сессия
	CreatedAt time.Time `gorm:"not null"`              // Revocation time / Время отзыва
}

// TableName returns the database table name for RevokedSession entity.
// TableName возвращает имя таблицы в базе данных для сущности RevokedSession.
func (RevokedSession) TableName() string {
	return "revoked_sessions"
}

// PasswordResetCode is a short-lived numeric code emailed for password recovery.
// PasswordResetCode представляет короткоживущий числовой код для восстановления пароля.
type PasswordResetCode struct {
	ID        int64     `gorm:"primaryKey"`                           // Primary key / Первичный ключ
	UserID    int64     `gorm:"not null;index"`                       // Owning user / Владелец
	Code      string    `gorm:"type:varchar(6);uniqueIndex;not null"` // Six-digit code / Шестизначный код
	ExpiresAt time.Time `gorm:"not null"`                             // Expiry time / Время истечения
	CreatedAt time.Time `gorm:"not null"`                             // Creation time / Время создания
}

// TableName returns the database table name for PasswordResetCode entity.
// TableName возвращает имя таблицы в базе данных для сущности PasswordResetCode.
func (PasswordResetCode) TableName() string {
	return "password_reset_codes"
}

// UserActivation stores the emailed account activation token.
// UserActivation хранит отправленный по почте токен активации аккаунта.
type UserActivation struct {
	ID        int64     `gorm:"primaryKey"`         // Primary key / Первичный ключ
	UserID    int64     `gorm:"not null;index"`     // Owning user / Владелец
	Token     string    `gorm:"type:text;not null"` // Activation JWT / JWT активации
	JTI       string    `gorm:"type:text;not null"` // Token id / Id токена
	CreatedAt time.Time `gorm:"not null"`           // Creation time / Время создания
}

// TableName returns the database table name for UserActivation entity.
// TableName возвращает имя таблицы в базе данных для сущности UserActivation.
func (UserActivation) TableName() string {
	return "user_activations"
}

// Correspondence holds the mailing address attached to a profile.
// Correspondence содержит почтовый адрес, привязанный к профилю.
type Correspondence struct {
	ID           int64     `gorm:"primaryKey"`                // Primary key / Первичный ключ
	ProfileID    int64     `gorm:"not null;uniqueIndex"`      // Owning profile / Профиль-владелец
	CountryID    int64     `gorm:"not null"`                  // Country reference / Ссылка на страну
	DepartmentID int64     `gorm:"not null"`                  // Department reference / Ссылка на регион
	City         string    `gorm:"type:varchar(100);not null"` // City / Город
	ZipCode      string    `gorm:"type:varchar(20);not null"` // Postal code / Почтовый индекс
	Address      string    `gorm:"type:varchar(255);not null"` // Street address / Адрес
	Observations *string   `gorm:"type:text"`                 // Delivery notes / Примечания
	CreatedAt    time.Time `gorm:"not null"`                  // Creation time / Время создания
	UpdatedAt    time.Time `gorm:"not null"`                  // Update time / Время обновления
}

// TableName returns the database table name for Correspondence entity.
// TableName возвращает имя таблицы в базе данных для сущности Correspondence.
func (Correspondence) TableName() string {
	return "correspondences"
}

// Country is seeded reference data for addresses.
// Country представляет справочные данные стран для адресов.
type Country struct {
	ID     int64  `gorm:"primaryKey" json:"id"`                    // Primary key / Первичный ключ
	Name   string `gorm:"type:varchar(100);not null" json:"name"`  // Country name / Название страны
	Prefix string `gorm:"type:varchar(8);not null" json:"prefix"`  // Phone prefix / Телефонный префикс
}

// TableName returns the database table name for Country entity.
// TableName возвращает имя таблицы в базе данных для сущности Country.
func (Country) TableName() string {
	return "countries"
}

// Department is a state or province within a country.
// Department представляет регион или провинцию внутри страны.
type Department struct {
	ID        int64  `gorm:"primaryKey" json:"id"`                   // Primary key / Первичный ключ
	CountryID int64  `gorm:"not null;index" json:"-"`                // Owning country / Страна
	Name      string `gorm:"type:varchar(100);not null" json:"name"` // Department name / Название региона
}

// TableName returns the database table name for Department entity.
// TableName возвращает имя таблицы в базе данных для сущности Department.
func (Department) TableName() string {
	return "departments"
}

// AuditLog represents an audit log entry for tracking account events.
// AuditLog представляет запись аудит-лога для отслеживания событий аккаунта.
type AuditLog struct {
	ID           int64     `gorm:"primaryKey"`                       // Primary key / Первичный ключ
	UserID       int64     `gorm:"not null;index:idx_audit_user"`    // User reference / Ссылка на пользователя
	Action       string    `gorm:"type:varchar(100);not null"`       // Action type / Тип действия
	ResourceType string    `gorm:"type:varchar(50)"`                 // Resource type / Тип ресурса
	ResourceID   string    `gorm:"type:varchar(100)"`                // Resource ID / ID ресурса
	Details      []byte    `gorm:"type:jsonb"`                       // JSON details / JSON детали
	IPAddress    *string   `gorm:"type:varchar(45)"`                 // Client IP / IP клиента
	UserAgent    *string   `gorm:"type:text"`                        // Client user agent / User agent клиента
	CreatedAt    time.Time `gorm:"not null;index:idx_audit_created"` // Creation time / Время создания
}

// TableName returns the database table name for AuditLog entity.
// TableName возвращает имя таблицы в базе данных для сущности AuditLog.
func (AuditLog) TableName() string {
	return "audit_logs"
}
