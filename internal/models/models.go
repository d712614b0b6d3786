// Package models holds the gorm mappings of the package-index schema.
package models

// All returns every model, in dependency order, for schema migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Project{},
		&Release{},
		&File{},
		&Role{},
		&JournalEntry{},
	}
}
