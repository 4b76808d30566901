package config

import (
	"fmt"
	"log"

	"bankerdir/internal/adapters/persistence/models"
	"bankerdir/internal/core/domain"
	"bankerdir/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedAdminUser creates the initial admin account when no admin exists.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD (dev defaults otherwise).
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := getEnv("ADMIN_EMAIL", "admin@bankerdir.local")
	plain := getEnv("ADMIN_PASSWORD", "changeme123")

	hashed, err := password.Hash(plain)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		FullName: "Administrator",
		Email:    email,
		Password: hashed,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin user: %s", email)
	return nil
}
