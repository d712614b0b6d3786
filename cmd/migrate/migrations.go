package main

import (
	"gorm.io/gorm"

	"github.com/pkgindex/legacy-api/internal/models"
)

// runMigrations creates the index schema. The publishing side owns the
// production schema; this is for development and test databases.
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles indexes AutoMigrate can't express.
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addSerialListingIndex,
		addRoleListingIndexes,
	}

	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}

	return nil
}

// addSerialListingIndex serves serial filtered listings in name order.
func addSerialListingIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_projects_last_serial_name
		ON projects(last_serial, normalized_name)
	`).Error
}

func addRoleListingIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_roles_project ON roles(project_id, role_name)`).Error; err != nil {
		return err
	}
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_roles_user ON roles(user_id, role_name)`).Error
}
