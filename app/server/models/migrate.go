package models

import "gorm.io/gorm"

// Migrate creates or updates every table the site needs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ContentEntry{},
		&Newcomer{},
		&GracePost{},
		&QTRecord{},
	)
}
