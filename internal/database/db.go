package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Vileyy/admin-halora-app/internal/logger"
	"github.com/Vileyy/admin-halora-app/internal/model"
)

// NewConnection opens the postgres pool holding admin accounts and the audit trail.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := Migrate(db); err != nil {
		logger.WithModule("database").WithError(err).Warn("auto-migrate failed")
	}
	return db, nil
}

// Migrate creates or updates the admin tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.AdminAccount{},
		&model.RefreshToken{},
		&model.AuditLog{},
	)
}
