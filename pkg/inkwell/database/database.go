package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect initializes the database connection. A postgres DSN takes
// precedence; otherwise the sqlite file at sqlitePath is used.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Connect(postgresDSN, sqlitePath string) error {
	cfg := &gorm.Config{TranslateError: true}

	var err error
	if postgresDSN != "" {
		DB, err = gorm.Open(postgres.Open(postgresDSN), cfg)
	} else {
		DB, err = gorm.Open(sqlite.Open(sqlitePath), cfg)
	}
	return err
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
