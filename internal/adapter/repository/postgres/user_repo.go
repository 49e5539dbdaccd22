// Package postgres provides PostgreSQL-based repository implementations.
// Пакет postgres предоставляет реализации репозиториев на базе PostgreSQL.
//
// This package implements all repository interfaces defined in port package
// using GORM as the ORM layer.
// Этот пакет реализует все интерфейсы репозиториев, определённые в пакете port,
// используя GORM в качестве ORM слоя.
package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/port"
)

// UserRepository implements port.UserRepository using PostgreSQL.
// UserRepository реализует интерфейс port.UserRepository с использованием PostgreSQL.
//
// Provides CRUD operations for user accounts, including a joined listing
// over users and their profiles for the administration views.
// Предоставляет CRUD операции для учётных записей, включая объединённую
// выборку пользователей и их профилей для административных представлений.
type UserRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewUserRepository creates a new UserRepository instance.
// NewUserRepository создаёт новый экземпляр UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user in the database.
// Create создаёт нового пользователя в базе данных.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.CreateTx(ctx, r.db, user)
}

// CreateTx creates a new user within an existing transaction.
// CreateTx создаёт нового пользователя в рамках существующей транзакции.
// Use this when creating a user as part of a larger transactional operation.
// Используйте, когда создание пользователя является частью большой транзакции.
func (r *UserRepository) CreateTx(ctx context.Context, tx *gorm.DB, user *domain.User) error {
	if err := tx.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return apperror.Conflict("El usuario ya existe")
		}
		return apperror.Internal("failed to create user", err)
	}
	return nil
}

// FindByID retrieves a user by their unique identifier.
// FindByID получает пользователя по уникальному идентификатору.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No existe usuario asociado")
		}
		return nil, apperror.Internal("failed to find user", err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by their email address.
// FindByEmail получает пользователя по адресу электронной почты.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No existe usuario asociado")
		}
		return nil, apperror.Internal("failed to find user", err)
	}
	return &user, nil
}

// Update updates an existing user in the database.
// Update обновляет существующего пользователя в базе данных.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return apperror.Conflict("El usuario ya existe")
		}
		return apperror.Internal("failed to update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("No existe usuario asociado")
	}
	return nil
}

// List retrieves users joined with their profiles, filtered and paginated.
// List получает пользователей, объединённых с профилями, с фильтрацией и пагинацией.
// Returns: rows, total count, error.
// Возвращает: строки, общее количество, ошибку.
func (r *UserRepository) List(ctx context.Context, filter port.UserFilter) ([]port.UserWithProfile, int64, error) {
	var total int64

	query := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Joins("JOIN profiles ON profiles.user_id = users.id")

	// Apply filters / Применяем фильтры
	if filter.ID != nil {
		query = query.Where("users.id = ?", *filter.ID)
	}
	if filter.Name != "" {
		name := "%" + filter.Name + "%"
		query = query.Where("profiles.first_name ILIKE ? OR profiles.last_name ILIKE ?", name, name)
	}
	if filter.Email != "" {
		query = query.Where("users.email ILIKE ?", "%"+filter.Email+"%")
	}
	if filter.DNIEmpty {
		query = query.Where("profiles.dni IS NULL OR profiles.dni = ''")
	} else if filter.DNI != "" {
		query = query.Where("profiles.dni ILIKE ?", "%"+filter.DNI+"%")
	}

	// Count total matching records / Подсчитываем общее количество записей
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal("failed to count users", err)
	}

	// Calculate offset for pagination / Вычисляем смещение для пагинации
	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		offset = 0
	}

	rows, err := r.selectWithProfiles(query.
		Order("users.created_at DESC").
		Limit(filter.PageSize).
		Offset(offset))
	if err != nil {
		return nil, 0, apperror.Internal("failed to list users", err)
	}

	return rows, total, nil
}

// ListAll retrieves every user joined with their profile, without pagination.
// ListAll получает всех пользователей с профилями, без пагинации.
// Used by the Excel export.
// Используется экспортом в Excel.
func (r *UserRepository) ListAll(ctx context.Context) ([]port.UserWithProfile, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Order("users.created_at DESC")

	rows, err := r.selectWithProfiles(query)
	if err != nil {
		return nil, apperror.Internal("failed to list users", err)
	}
	return rows, nil
}

// selectWithProfiles runs the joined query and stitches user and profile rows.
// selectWithProfiles выполняет объединённый запрос и собирает строки пользователя и профиля.
func (r *UserRepository) selectWithProfiles(query *gorm.DB) ([]port.UserWithProfile, error) {
	var users []domain.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return []port.UserWithProfile{}, nil
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var profiles []domain.Profile
	if err := r.db.Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}

	byUser := make(map[int64]domain.Profile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}

	rows := make([]port.UserWithProfile, 0, len(users))
	for _, u := range users {
		rows = append(rows, port.UserWithProfile{User: u, Profile: byUser[u.ID]})
	}
	return rows, nil
}

// ExistsByEmail checks if a user with the given email already exists.
// ExistsByEmail проверяет, существует ли уже пользователь с данным email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error

	if err != nil {
		return false, apperror.Internal("failed to check email existence", err)
	}
	return count > 0, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL duplicate key violation.
// isDuplicateKeyError проверяет, является ли ошибка нарушением уникального ключа PostgreSQL.
// PostgreSQL error code 23505 indicates unique_violation.
// Код ошибки PostgreSQL 23505 указывает на unique_violation.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errMsg := err.Error()
	return errMsg != "" && (strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "23505"))
}
