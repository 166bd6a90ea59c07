package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskdeck.app/taskdeck/internal/storage"
)

func NewDatabaseClient(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
