package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"soilsync/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.PlantVariety{},
		&entities.PlanRecord{},
		&entities.CritiqueLog{},
		&entities.PlantingLog{},
		&entities.GuideDoc{},
		&entities.GuideChunk{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}
