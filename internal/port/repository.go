// Package port defines interfaces (ports) for the application's external dependencies.
// Пакет port определяет интерфейсы (порты) для внешних зависимостей приложения.
//
// This package follows the Hexagonal Architecture (Ports and Adapters) pattern,
// where ports define the contracts that adapters must implement.
// Этот пакет следует паттерну Гексагональной Архитектуры (Порты и Адаптеры),
// где порты определяют контракты, которые должны реализовывать адаптеры.
package port

import (
	"context"

	"gorm.io/gorm"

	"github.com/andrewhigh08/account-service/internal/domain"
)

// UserFilter defines filtering options for paginated user queries.
// UserFilter определяет параметры фильтрации для постраничных запросов пользователей.
//
// Name matches any of the profile name columns, Email and DNI match their
// respective columns case-insensitively. DNIEmpty selects users whose
// profile has no document number.
// Name сопоставляется с любой из колонок имени профиля, Email и DNI
// сопоставляются со своими колонками без учёта регистра. DNIEmpty выбирает
// пользователей, у профиля которых нет номера документа.
type UserFilter struct {
	ID       *int64 // Exact user id / Точный id пользователя
	Name     string // Substring over profile names / Подстрока по именам профиля
	Email    string // Substring over email / Подстрока по email
	DNI      string // Substring over document number / Подстрока по номеру документа
	DNIEmpty bool   // Select missing document numbers / Выбрать отсутствующие номера
	Page     int    // Page number / Номер страницы
	PageSize int    // Items per page / Элементов на странице
}

// NameFilter defines filtering options for simple named entities (roles, categories).
// NameFilter определяет параметры фильтрации для простых именованных сущностей (роли, категории).
type NameFilter struct {
	ID       *int64 // Exact id / Точный id
	Name     string // Substring over name / Подстрока по имени
	Page     int    // Page number / Номер страницы
	PageSize int    // Items per page / Элементов на странице
}

// UserWithProfile joins a user with its profile for list views.
// UserWithProfile объединяет пользователя с его профилем для списков.
type UserWithProfile struct {
	User    domain.User
	Profile domain.Profile
}

// UserRepository defines the interface for user data access operations.
// UserRepository определяет интерфейс для операций доступа к данным пользователей.
//
// This interface abstracts the data storage layer, allowing different
// implementations (PostgreSQL, SQLite in tests) to be used interchangeably.
// Этот интерфейс абстрагирует слой хранения данных, позволяя использовать
// различные реализации (PostgreSQL, SQLite в тестах) взаимозаменяемо.
type UserRepository interface {
	// Create creates a new user in the database.
	// Create создаёт нового пользователя в базе данных.
	Create(ctx context.Context, user *domain.User) error

	// CreateTx creates a new user within an existing database transaction.
	// CreateTx создаёт нового пользователя в рамках существующей транзакции БД.
	CreateTx(ctx context.Context, tx *gorm.DB, user *domain.User) error

	// FindByID retrieves a user by their unique identifier.
	// FindByID получает пользователя по уникальному идентификатору.
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// FindByEmail retrieves a user by their email address.
	// FindByEmail получает пользователя по email адресу.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update updates an existing user's information.
	// Update обновляет информацию существующего пользователя.
	Update(ctx context.Context, user *domain.User) error

	// List retrieves users joined with their profiles, filtered and paginated.
	// List получает пользователей вместе с профилями с фильтрацией и пагинацией.
	// Returns the rows, total count, and any error.
	// Возвращает строки, общее количество и ошибку.
	List(ctx context.Context, filter UserFilter) ([]UserWithProfile, int64, error)

	// ListAll retrieves every user with its profile, ordered by id.
	// ListAll получает всех пользователей с профилями, упорядоченных по id.
	ListAll(ctx context.Context) ([]UserWithProfile, error)

	// ExistsByEmail checks if a user with the given email already exists.
	// ExistsByEmail проверяет, существует ли пользователь с указанным email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ProfileRepository defines the interface for profile data access.
// ProfileRepository определяет интерфейс для доступа к данным профилей.
type ProfileRepository interface {
	// Create creates a new profile.
	// Create создаёт новый профиль.
	Create(ctx context.Context, profile *domain.Profile) error

	// CreateTx creates a new profile within a transaction.
	// CreateTx создаёт новый профиль в рамках транзакции.
	CreateTx(ctx context.Context, tx *gorm.DB, profile *domain.Profile) error

	// FindByUserID retrieves the profile attached to a user.
	// FindByUserID получает профиль, привязанный к пользователю.
	FindByUserID(ctx context.Context, userID int64) (*domain.Profile, error)

	// Update updates an existing profile.
	// Update обновляет существующий профиль.
	Update(ctx context.Context, profile *domain.Profile) error
}

// SessionRepository defines the interface for the refresh session ledger.
// SessionRepository определяет интерфейс журнала refresh сессий.
//
// Sessions are append-only; revocation is recorded as a separate row in
// revoked_sessions rather than mutating or deleting the session itself.
// Сессии только добавляются; отзыв фиксируется отдельной строкой в
// revoked_sessions, а не изменением или удалением самой сессии.
type SessionRepository interface {
	// Create records a newly issued refresh token.
	// Create фиксирует только что выданный refresh токен.
	Create(ctx context.Context, session *domain.Session) error

	// FindByToken retrieves the session row for a refresh token value.
	// FindByToken получает строку сессии по значению refresh токена.
	FindByToken(ctx context.Context, token string) (*domain.Session, error)

	// IsRevoked reports whether the session has a revocation row.
	// IsRevoked сообщает, есть ли у сессии строка отзыва.
	IsRevoked(ctx context.Context, sessionID int64) (bool, error)

	// Revoke inserts a revocation row for the session.
	// Revoke вставляет строку отзыва для сессии.
	Revoke(ctx context.Context, sessionID int64) error

	// RevokeAllForUser revokes every non-revoked session of a user.
	// RevokeAllForUser отзывает все неотозванные сессии пользователя.
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// PasswordResetRepository defines the interface for password reset codes.
// PasswordResetRepository определяет интерфейс для кодов сброса пароля.
type PasswordResetRepository interface {
	// Create stores a new reset code.
	// Create сохраняет новый код сброса.
	Create(ctx context.Context, code *domain.PasswordResetCode) error

	// FindByUserAndCode retrieves a code row by owner and code value.
	// FindByUserAndCode получает строку кода по владельцу и значению кода.
	FindByUserAndCode(ctx context.Context, userID int64, code string) (*domain.PasswordResetCode, error)

	// ExistsByCode checks whether a code value is already taken.
	// ExistsByCode проверяет, занято ли уже значение кода.
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// DeleteByUser removes all codes belonging to a user.
	// DeleteByUser удаляет все коды, принадлежащие пользователю.
	DeleteByUser(ctx context.Context, userID int64) error

	// Delete removes a single code row.
	// Delete удаляет одну строку кода.
	Delete(ctx context.Context, id int64) error
}

// ActivationRepository defines the interface for account activation tokens.
// ActivationRepository определяет интерфейс для токенов активации аккаунта.
type ActivationRepository interface {
	// Create stores a new activation token.
	// Create сохраняет новый токен активации.
	Create(ctx context.Context, activation *domain.UserActivation) error

	// CreateTx stores a new activation token within a transaction.
	// CreateTx сохраняет новый токен активации в рамках транзакции.
	CreateTx(ctx context.Context, tx *gorm.DB, activation *domain.UserActivation) error

	// FindByJTI retrieves an activation row by token id.
	// FindByJTI получает строку активации по id токена.
	FindByJTI(ctx context.Context, jti string) (*domain.UserActivation, error)

	// DeleteByUser removes all activation rows belonging to a user.
	// DeleteByUser удаляет все строки активации, принадлежащие пользователю.
	DeleteByUser(ctx context.Context, userID int64) error
}

// RoleRepository defines the interface for role data access.
// RoleRepository определяет интерфейс для доступа к данным ролей.
type RoleRepository interface {
	// Create creates a new role.
	// Create создаёт новую роль.
	Create(ctx context.Context, role *domain.Role) error

	// FindByID retrieves a role by id, excluding soft-deleted rows.
	// FindByID получает роль по id, исключая мягко удалённые строки.
	FindByID(ctx context.Context, id int64) (*domain.Role, error)

	// FindByIDUnscoped retrieves a role by id including soft-deleted rows.
	// FindByIDUnscoped получает роль по id, включая мягко удалённые строки.
	FindByIDUnscoped(ctx context.Context, id int64) (*domain.Role, error)

	// FindByName retrieves a role by name.
	// FindByName получает роль по имени.
	FindByName(ctx context.Context, name string) (*domain.Role, error)

	// Update updates an existing role.
	// Update обновляет существующую роль.
	Update(ctx context.Context, role *domain.Role) error

	// Delete soft-deletes a role.
	// Delete мягко удаляет роль.
	Delete(ctx context.Context, id int64) error

	// List retrieves roles with filtering and pagination.
	// List получает роли с фильтрацией и пагинацией.
	List(ctx context.Context, filter NameFilter) ([]domain.Role, int64, error)

	// ListAll retrieves all non-deleted roles ordered by name.
	// ListAll получает все неудалённые роли, упорядоченные по имени.
	ListAll(ctx context.Context) ([]domain.Role, error)
}

// CategoryRepository defines the interface for category data access.
// CategoryRepository определяет интерфейс для доступа к данным категорий.
type CategoryRepository interface {
	// Create creates a new category.
	// Create создаёт новую категорию.
	Create(ctx context.Context, category *domain.Category) error

	// FindByID retrieves a category by id, excluding soft-deleted rows.
	// FindByID получает категорию по id, исключая мягко удалённые строки.
	FindByID(ctx context.Context, id int64) (*domain.Category, error)

	// FindByIDUnscoped retrieves a category by id including soft-deleted rows.
	// FindByIDUnscoped получает категорию по id, включая мягко удалённые строки.
	FindByIDUnscoped(ctx context.Context, id int64) (*domain.Category, error)

	// Update updates an existing category.
	// Update обновляет существующую категорию.
	Update(ctx context.Context, category *domain.Category) error

	// Delete soft-deletes a category.
	// Delete мягко удаляет категорию.
	Delete(ctx context.Context, id int64) error

	// List retrieves categories with filtering and pagination.
	// List получает категории с фильтрацией и пагинацией.
	List(ctx context.Context, filter NameFilter) ([]domain.Category, int64, error)

	// ListAll retrieves all non-deleted categories ordered by name.
	// ListAll получает все неудалённые категории, упорядоченные по имени.
	ListAll(ctx context.Context) ([]domain.Category, error)
}

// CorrespondenceRepository defines the interface for mailing address data.
// CorrespondenceRepository определяет интерфейс для данных почтовых адресов.
type CorrespondenceRepository interface {
	// Create creates a new correspondence record.
	// Create создаёт новую запись корреспонденции.
	Create(ctx context.Context, correspondence *domain.Correspondence) error

	// FindByProfileID retrieves the correspondence attached to a profile.
	// FindByProfileID получает корреспонденцию, привязанную к профилю.
	FindByProfileID(ctx context.Context, profileID int64) (*domain.Correspondence, error)

	// Update updates an existing correspondence record.
	// Update обновляет существующую запись корреспонденции.
	Update(ctx context.Context, correspondence *domain.Correspondence) error
}

// GeoRepository defines the interface for country/department reference data.
// GeoRepository определяет интерфейс для справочных данных стран и регионов.
type GeoRepository interface {
	// ListCountries retrieves all countries.
	// ListCountries получает все страны.
	ListCountries(ctx context.Context) ([]domain.Country, error)

	// ListDepartments retrieves the departments of one country.
	// ListDepartments получает регионы одной страны.
	ListDepartments(ctx context.Context, countryID int64) ([]domain.Department, error)

	// CountCountries returns the number of seeded countries.
	// CountCountries возвращает количество записанных стран.
	CountCountries(ctx context.Context) (int64, error)
}

// AuditLogRepository defines the interface for audit log data access.
// AuditLogRepository определяет интерфейс для доступа к данным аудит-логов.
type AuditLogRepository interface {
	// Create creates a new audit log entry.
	// Create создаёт новую запись аудит-лога.
	Create(ctx context.Context, log *domain.AuditLog) error

	// FindByUserID retrieves recent audit logs for a specific user.
	// FindByUserID получает последние записи аудит-лога для пользователя.
	FindByUserID(ctx context.Context, userID int64, limit int) ([]domain.AuditLog, error)
}

// Transaction provides database transaction support.
// Transaction обеспечивает поддержку транзакций базы данных.
//
// Transactions ensure data consistency when multiple operations
// need to be performed atomically.
// Транзакции обеспечивают согласованность данных, когда несколько операций
// должны выполняться атомарно.
type Transaction interface {
	// WithTransaction executes a function within a transaction.
	// WithTransaction выполняет функцию в рамках транзакции.
	// Automatically commits on success or rolls back on error.
	// Автоматически фиксирует при успехе или откатывает при ошибке.
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
