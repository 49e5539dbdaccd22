package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/andrewhigh08/account-service/internal/config"
	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
)

// Seeder handles database seeding operations for initial data setup.
// Seeder управляет операциями заполнения базы данных начальными данными.
//
// Used to create the fixed roles, the geographic reference data and the
// super admin account on first run.
// Используется для создания фиксированных ролей, географических
// справочников и аккаунта супер-администратора при первом запуске.
type Seeder struct {
	db     *gorm.DB          // Database connection / Подключение к базе данных
	roles  config.RolesConfig // Configured role ids / Настроенные id ролей
	logger *logger.Logger    // Logger instance / Экземпляр логгера
}

// NewSeeder creates a new Seeder instance.
// NewSeeder создаёт новый экземпляр Seeder.
func NewSeeder(db *gorm.DB, roles config.RolesConfig, log *logger.Logger) *Seeder {
	return &Seeder{
		db:     db,
		roles:  roles,
		logger: log.WithComponent("seeder"),
	}
}

// SeedAll runs all seeding operations in order.
// SeedAll запускает все операции заполнения по порядку.
//
// Order: 1) Roles, 2) Countries and departments, 3) Super admin account.
// Порядок: 1) Роли, 2) Страны и регионы, 3) Аккаунт супер-администратора.
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.logger.Info("starting database seeding")

	if err := s.SeedRoles(ctx); err != nil {
		return err
	}
	if err := s.SeedGeo(ctx); err != nil {
		return err
	}
	if err := s.SeedSuperAdmin(ctx); err != nil {
		return err
	}

	s.logger.Info("database seeding completed successfully")
	return nil
}

// SeedRoles creates the fixed roles at their configured ids.
// SeedRoles создаёт фиксированные роли с настроенными id.
//
// The middleware allow-lists compare against these ids, so they must be
// stable across environments.
// Allow-list'ы middleware сравнивают именно эти id, поэтому они должны
// быть стабильны во всех окружениях.
func (s *Seeder) SeedRoles(_ context.Context) error {
	roles := []domain.Role{
		{ID: s.roles.SuperAdminID, Name: "SUPER_ADMIN"},
		{ID: s.roles.AdminID, Name: "ADMIN"},
		{ID: s.roles.UserID, Name: "USER"},
	}

	for _, role := range roles {
		var count int64
		if err := s.db.Model(&domain.Role{}).Where("id = ?", role.ID).Count(&count).Error; err != nil {
			s.logger.Error("failed to check for existing role", "role_id", role.ID, "error", err)
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.db.Create(&role).Error; err != nil {
			s.logger.Error("failed to create role", "name", role.Name, "error", err)
			return err
		}
		s.logger.Debug("role seeded", "role_id", role.ID, "name", role.Name)
	}

	s.logger.Info("roles seeded successfully")
	return nil
}

// SeedGeo loads the country and department reference data once.
// SeedGeo загружает справочники стран и регионов один раз.
func (s *Seeder) SeedGeo(_ context.Context) error {
	var count int64
	if err := s.db.Model(&domain.Country{}).Count(&count).Error; err != nil {
		s.logger.Error("failed to count countries", "error", err)
		return err
	}
	if count > 0 {
		s.logger.Info("geographic data already present, skipping")
		return nil
	}

	for _, seed := range countrySeed {
		country := domain.Country{Name: seed.name, Prefix: seed.prefix}
		if err := s.db.Create(&country).Error; err != nil {
			s.logger.Error("failed to create country", "name", seed.name, "error", err)
			return err
		}
		for _, depName := range seed.departments {
			dep := domain.Department{CountryID: country.ID, Name: depName}
			if err := s.db.Create(&dep).Error; err != nil {
				s.logger.Error("failed to create department", "name", depName, "error", err)
				return err
			}
		}
	}

	s.logger.Info("geographic data seeded successfully")
	return nil
}

// countrySeed is the bundled geographic reference data.
// countrySeed - встроенные географические справочные данные.
var countrySeed = []struct {
	name        string
	prefix      string
	departments []string
}{
	{"Colombia", "+57", []string{
		"Amazonas", "Antioquia", "Atlántico", "Bogotá D.C.", "Bolívar",
		"Boyacá", "Caldas", "Cauca", "Cesar", "Córdoba", "Cundinamarca",
		"Huila", "La Guajira", "Magdalena", "Meta", "Nariño",
		"Norte de Santander", "Quindío", "Risaralda", "Santander",
		"Sucre", "Tolima", "Valle del Cauca",
	}},
	{"Ecuador", "+593", []string{
		"Azuay", "Esmeraldas", "Guayas", "Loja", "Manabí", "Pichincha", "Tungurahua",
	}},
	{"Perú", "+51", []string{
		"Arequipa", "Cusco", "La Libertad", "Lambayeque", "Lima", "Piura", "Puno",
	}},
	{"México", "+52", []string{
		"Ciudad de México", "Guadalajara", "Jalisco", "Nuevo León", "Puebla", "Veracruz", "Yucatán",
	}},
	{"Venezuela", "+58", []string{
		"Carabobo", "Distrito Capital", "Lara", "Miranda", "Táchira", "Zulia",
	}},
}

// SeedSuperAdmin creates the default super admin account if it doesn't exist.
// SeedSuperAdmin создаёт аккаунт супер-администратора по умолчанию, если он не существует.
//
// Uses hardcoded credentials for initial setup. Should be changed after first login.
// Использует захардкоженные учётные данные для начальной настройки. Следует изменить после первого входа.
func (s *Seeder) SeedSuperAdmin(_ context.Context) error {
	// Default admin credentials / Учётные данные администратора по умолчанию
	const (
		adminEmail    = "admin@account-service.local"
		adminPassword = "AdminSecret123!"
	)

	// Check if admin already exists / Проверяем, существует ли админ
	var count int64
	if err := s.db.Model(&domain.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		s.logger.Error("failed to check for existing admin", "error", err)
		return err
	}
	if count > 0 {
		s.logger.Info("super admin already exists, skipping")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash admin password", "error", err)
		return err
	}

	admin := &domain.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Activated:    true,
		RoleID:       s.roles.SuperAdminID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Create(admin).Error; txErr != nil {
			return txErr
		}
		profile := &domain.Profile{
			UserID:    admin.ID,
			FirstName: "Super",
			LastName:  "Admin",
			DNIType:   strPtr("CC"),
			DNI:       strPtr("0000000000"),
			Prefix:    strPtr("+57"),
			Mobile:    strPtr("0000000000"),
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		s.logger.Error("failed to create admin account", "error", err)
		return err
	}

	s.logger.Info("super admin created successfully", "email", adminEmail)
	return nil
}
