// Package port defines interfaces (ports) for the application's external dependencies.
// Пакет port определяет интерфейсы (порты) для внешних зависимостей приложения.
package port

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andrewhigh08/account-service/internal/domain"
)

// TokenPair contains both access and refresh tokens sharing one jti.
// TokenPair содержит пару access и refresh токенов с общим jti.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Claims represents JWT token claims for this service.
// Claims представляет claims JWT токена для этого сервиса.
//
// UserID travels in a dedicated claim; the registered ID field carries the
// jti shared by the pair issued together.
// UserID передаётся в отдельном claim; зарегистрированное поле ID несёт jti,
// общий для выданной вместе пары.
type Claims struct {
	UserID               int64 `json:"id"` // User's unique ID / Уникальный ID пользователя
	jwt.RegisteredClaims       // Standard JWT claims / Стандартные JWT claims
}

// TokenIssuer defines the interface for minting and verifying JWT tokens.
// TokenIssuer определяет интерфейс для выпуска и проверки JWT токенов.
//
// Three token kinds exist, each signed with its own secret: access,
// refresh, and account activation.
// Существует три вида токенов, каждый подписывается своим секретом:
// access, refresh и активация аккаунта.
type TokenIssuer interface {
	// IssuePair mints an access/refresh pair sharing a fresh jti.
	// IssuePair выпускает пару access/refresh с новым общим jti.
	IssuePair(userID int64) (pair *TokenPair, jti string, err error)

	// IssueActivationToken mints an account activation token.
	// IssueActivationToken выпускает токен активации аккаунта.
	IssueActivationToken(userID int64) (token, jti string, err error)

	// VerifyAccess verifies an access token and returns its claims.
	// VerifyAccess проверяет access токен и возвращает его claims.
	VerifyAccess(tokenString string) (*Claims, error)

	// VerifyRefresh verifies a refresh token and returns its claims.
	// VerifyRefresh проверяет refresh токен и возвращает его claims.
	VerifyRefresh(tokenString string) (*Claims, error)

	// VerifyActivation verifies an activation token and returns its claims.
	// VerifyActivation проверяет токен активации и возвращает его claims.
	VerifyActivation(tokenString string) (*Claims, error)
}

// AuthService defines the interface for authentication operations.
// AuthService определяет интерфейс для операций аутентификации.
//
// This service owns the session ledger: every sign-in issues a session row,
// every refresh rotates it, and sign-out revokes it.
// Этот сервис владеет журналом сессий: каждый вход создаёт строку сессии,
// каждое обновление ротирует её, а выход отзывает.
type AuthService interface {
	// SignIn authenticates a user and opens a new session.
	// SignIn аутентифицирует пользователя и открывает новую сессию.
	SignIn(ctx context.Context, email, password string) (*TokenPair, error)

	// Refresh rotates a refresh token: the presented session is revoked and
	// a new pair with a fresh shared jti is issued.
	// Refresh ротирует refresh токен: предъявленная сессия отзывается и
	// выпускается новая пара с новым общим jti.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// SignOut revokes the session identified by the refresh token.
	// SignOut отзывает сессию, идентифицируемую refresh токеном.
	SignOut(ctx context.Context, refreshToken string) error

	// VerifyAccessToken verifies an access token for the auth middleware.
	// VerifyAccessToken проверяет access токен для middleware аутентификации.
	VerifyAccessToken(ctx context.Context, tokenString string) (*Claims, error)

	// RevokeAllSessions revokes every active session of a user.
	// RevokeAllSessions отзывает все активные сессии пользователя.
	RevokeAllSessions(ctx context.Context, userID int64) error
}

// RegistrationService defines the interface for account registration.
// RegistrationService определяет интерфейс для регистрации аккаунтов.
type RegistrationService interface {
	// Register creates an unactivated account with its profile and emails
	// the activation link.
	// Register создаёт неактивированный аккаунт с профилем и отправляет
	// ссылку активации по почте.
	Register(ctx context.Context, req *RegisterRequest) error

	// Activate confirms an account using the emailed activation token.
	// Activate подтверждает аккаунт с помощью присланного токена активации.
	Activate(ctx context.Context, token string) error
}

// RegisterRequest carries the fields required to open an account.
// RegisterRequest содержит поля, необходимые для открытия аккаунта.
type RegisterRequest struct {
	FirstName      string
	MiddleName     *string
	LastName       string
	SecondLastName *string
	DNIType        *string // Optional, collectable later via profile update / Необязателен, заполняется позже через обновление профиля
	DNI            *string
	Prefix         *string
	Mobile         *string
	Email          string
	Password       string
}

// PasswordService defines the interface for password recovery and change.
// PasswordService определяет интерфейс для восстановления и смены пароля.
type PasswordService interface {
	// GenerateCode creates a fresh reset code for the account, emails it
	// and returns the account id. Prior codes of the same account are
	// invalidated.
	// GenerateCode создаёт новый код сброса для аккаунта, отправляет его
	// по почте и возвращает id аккаунта. Прежние коды того же аккаунта
	// аннулируются.
	GenerateCode(ctx context.Context, email string) (int64, error)

	// VerifyCode consumes a reset code and sets the new password.
	// VerifyCode потребляет код сброса и устанавливает новый пароль.
	VerifyCode(ctx context.Context, userID int64, code, newPassword string) error

	// ChangePassword changes the password of an authenticated user.
	// ChangePassword меняет пароль аутентифицированного пользователя.
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

// ProfileService defines the interface for profile and avatar operations.
// ProfileService определяет интерфейс для операций с профилем и аватаром.
type ProfileService interface {
	// GetProfile retrieves the caller's profile joined with account data.
	// GetProfile получает профиль вызывающего вместе с данными аккаунта.
	GetProfile(ctx context.Context, userID int64) (*domain.User, *domain.Profile, error)

	// UpdateProfile updates the caller's profile fields.
	// UpdateProfile обновляет поля профиля вызывающего.
	UpdateProfile(ctx context.Context, userID int64, profile *domain.Profile) error

	// SaveAvatar stores an uploaded avatar image and removes the previous one.
	// SaveAvatar сохраняет загруженный аватар и удаляет предыдущий.
	SaveAvatar(ctx context.Context, userID int64, fileName string, data []byte) error

	// AvatarPath returns the on-disk path of the caller's avatar.
	// AvatarPath возвращает путь к аватару вызывающего на диске.
	AvatarPath(ctx context.Context, userID int64) (string, error)
}

// UserService defines the interface for administrative user management.
// UserService определяет интерфейс для административного управления пользователями.
type UserService interface {
	// CreateUser creates an already-activated user with its profile.
	// CreateUser создаёт уже активированного пользователя с профилем.
	CreateUser(ctx context.Context, req *AdminUserRequest) error

	// GetUser retrieves one user joined with its profile.
	// GetUser получает одного пользователя вместе с профилем.
	GetUser(ctx context.Context, id int64) (*domain.User, *domain.Profile, error)

	// UpdateUser updates a user's account and profile fields.
	// UpdateUser обновляет поля аккаунта и профиля пользователя.
	UpdateUser(ctx context.Context, id int64, req *AdminUserRequest) (*domain.User, *domain.Profile, error)

	// SetStatus toggles the activated flag and clears pending activations.
	// SetStatus переключает флаг активации и очищает ожидающие активации.
	SetStatus(ctx context.Context, userID int64, activated bool) error

	// ListUsers retrieves users with profiles, filtered and paginated.
	// ListUsers получает пользователей с профилями с фильтрацией и пагинацией.
	ListUsers(ctx context.Context, filter UserFilter) ([]UserWithProfile, int64, error)

	// ExportUsers renders every user into an XLSX workbook.
	// ExportUsers выгружает всех пользователей в книгу XLSX.
	ExportUsers(ctx context.Context) ([]byte, error)
}

// AdminUserRequest carries the fields of an administrative create or update.
// AdminUserRequest содержит поля административного создания или обновления.
type AdminUserRequest struct {
	FirstName      string
	MiddleName     *string
	LastName       string
	SecondLastName *string
	DNIType        *string
	DNI            *string
	Prefix         *string
	Mobile         *string
	Email          string
	Password       string // Optional on update / Необязателен при обновлении
	RoleID         int64
}

// RoleService defines the interface for role management.
// RoleService определяет интерфейс для управления ролями.
type RoleService interface {
	// CreateRole creates a new role.
	// CreateRole создаёт новую роль.
	CreateRole(ctx context.Context, name string) error

	// GetRole retrieves a role by id.
	// GetRole получает роль по id.
	GetRole(ctx context.Context, id int64) (*domain.Role, error)

	// UpdateRole renames a role.
	// UpdateRole переименовывает роль.
	UpdateRole(ctx context.Context, id int64, name string) error

	// DeleteRole soft-deletes a role. Deleting twice is an error.
	// DeleteRole мягко удаляет роль. Повторное удаление является ошибкой.
	DeleteRole(ctx context.Context, id int64) error

	// ListRoles retrieves roles with filtering and pagination.
	// ListRoles получает роли с фильтрацией и пагинацией.
	ListRoles(ctx context.Context, filter NameFilter) ([]domain.Role, int64, error)

	// ListRolesSmall retrieves id/name pairs for dropdowns.
	// ListRolesSmall получает пары id/name для выпадающих списков.
	ListRolesSmall(ctx context.Context) ([]domain.Role, error)

	// ExportRoles renders every role into an XLSX workbook.
	// ExportRoles выгружает все роли в книгу XLSX.
	ExportRoles(ctx context.Context) ([]byte, error)
}

// CategoryService defines the interface for category management.
// CategoryService определяет интерфейс для управления категориями.
type CategoryService interface {
	// CreateCategory creates a category, normalizing the image when present.
	// CreateCategory создаёт категорию, нормализуя изображение при наличии.
	CreateCategory(ctx context.Context, name, url string, image []byte) error

	// GetCategory retrieves a category by id.
	// GetCategory получает категорию по id.
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)

	// UpdateCategory updates a category and optionally replaces its image.
	// UpdateCategory обновляет категорию и при необходимости заменяет изображение.
	UpdateCategory(ctx context.Context, id int64, name, url string, image []byte) error

	// DeleteCategory soft-deletes a category. Deleting twice is an error.
	// DeleteCategory мягко удаляет категорию. Повторное удаление является ошибкой.
	DeleteCategory(ctx context.Context, id int64) error

	// ListCategories retrieves categories with filtering and pagination.
	// ListCategories получает категории с фильтрацией и пагинацией.
	ListCategories(ctx context.Context, filter NameFilter) ([]domain.Category, int64, error)

	// ListCategoriesSmall retrieves id/name/url triples ordered by name.
	// ListCategoriesSmall получает тройки id/name/url, упорядоченные по имени.
	ListCategoriesSmall(ctx context.Context) ([]domain.Category, error)

	// ExportCategories renders every category into an XLSX workbook.
	// ExportCategories выгружает все категории в книгу XLSX.
	ExportCategories(ctx context.Context) ([]byte, error)
}

// CorrespondenceService defines the interface for mailing address upsert.
// CorrespondenceService определяет интерфейс для работы с почтовым адресом.
type CorrespondenceService interface {
	// GetCorrespondence retrieves the caller's mailing address.
	// GetCorrespondence получает почтовый адрес вызывающего.
	GetCorrespondence(ctx context.Context, userID int64) (*domain.Correspondence, error)

	// UpsertCorrespondence creates or replaces the caller's mailing address.
	// Returns true when a new record was created.
	// UpsertCorrespondence создаёт или заменяет почтовый адрес вызывающего.
	// Возвращает true, если была создана новая запись.
	UpsertCorrespondence(ctx context.Context, userID int64, correspondence *domain.Correspondence) (bool, error)
}

// GeoService defines the interface for country/department lookups.
// GeoService определяет интерфейс для справочников стран и регионов.
type GeoService interface {
	// ListCountries retrieves all countries.
	// ListCountries получает все страны.
	ListCountries(ctx context.Context) ([]domain.Country, error)

	// ListDepartments retrieves the departments of a country.
	// ListDepartments получает регионы страны.
	ListDepartments(ctx context.Context, countryID int64) ([]domain.Department, error)
}

// ContactService defines the interface for the public contact form.
// ContactService определяет интерфейс для публичной формы обратной связи.
type ContactService interface {
	// SendContact forwards a contact form message to the support mailbox.
	// SendContact пересылает сообщение формы обратной связи в поддержку.
	SendContact(ctx context.Context, name, email, subject, message string) error
}

// Mailer defines the interface for outgoing email.
// Mailer определяет интерфейс для исходящей почты.
//
// Templates are HTML bodies with simple placeholder substitution; delivery
// failures must be reported, callers decide whether they are fatal.
// Шаблоны представляют собой HTML с простой подстановкой; об ошибках
// доставки нужно сообщать, фатальность решает вызывающий.
type Mailer interface {
	// Send delivers an HTML email to one recipient.
	// Send доставляет HTML письмо одному получателю.
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// AuditService defines the interface for audit logging operations.
// AuditService определяет интерфейс для операций аудит-логирования.
type AuditService interface {
	// LogAction logs an action to the audit trail.
	// LogAction записывает действие в аудит-лог.
	LogAction(ctx context.Context, userID int64, action, resourceType, resourceID string, details map[string]interface{}) error

	// GetUserAuditLogs retrieves recent audit log entries for a user.
	// GetUserAuditLogs получает последние записи аудит-лога для пользователя.
	GetUserAuditLogs(ctx context.Context, userID int64, limit int) ([]domain.AuditLog, error)
}
