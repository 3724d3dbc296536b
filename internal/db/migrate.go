package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/storerate-backend/config"
	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"github.com/ikkim/storerate-backend/pkg/util"
	"gorm.io/gorm"
)

// Models lists every table owned by the application, in dependency order
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Store{},
		&model.Rating{},
		&model.RevokedToken{},
	}
}

// Migrate runs database migrations
func Migrate(database *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := database.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedAdmin creates the default administrator when no account with the
// configured email exists. It reports whether a new account was created.
func SeedAdmin(database *gorm.DB, cfg config.AdminSeedConfig, hasher *util.PasswordHasher) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" || cfg.Password == "" {
		logger.Warn("Admin seed skipped: ADMIN_EMAIL or ADMIN_PASSWORD empty")
		return false, nil
	}

	var existing model.User
	err := database.Where("email = ?", email).First(&existing).Error
	if err == nil {
		logger.Info("Admin user already exists, skipping seed", map[string]interface{}{
			"email": email,
		})
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := hasher.Hash(cfg.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		Name:         cfg.Name,
		Email:        email,
		PasswordHash: hash,
		Address:      cfg.Address,
		Role:         model.RoleAdmin,
	}
	if err := database.Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Default admin user created", map[string]interface{}{
		"user_id": admin.ID,
		"email":   admin.Email,
	})
	return true, nil
}
