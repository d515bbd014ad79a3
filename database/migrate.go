package database

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
)

// Migrate migrates the database schema for every model
func Migrate(db *gorm.DB, log hclog.Logger) error {
	log.Info("Migrating database schema...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("✅ Database schema migrated")
	return nil
}
