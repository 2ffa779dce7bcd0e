package models

import "gorm.io/gorm"

// AllModels returns all models for migration.
// Note: User must be migrated before the models that reference it.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Blog{},
		&Tag{},
		&Category{},
		&BlogTag{},
		&BlogCategory{},
		&Comment{},
		&Like{},
		&Follow{},
	}
}

// AutoMigrate wires the explicit join models into the many2many
// associations and runs GORM auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Blog{}, "Tags", &BlogTag{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Blog{}, "Categories", &BlogCategory{}); err != nil {
		return err
	}
	return db.AutoMigrate(AllModels()...)
}
