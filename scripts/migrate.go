package main

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"qrplacas/config"
	"qrplacas/models"
)

func Migrate() {
	logger := config.Config.Logger
	defer logger.Sync()

	db, err := gorm.Open(postgres.Open(config.Config.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatalf("database connection error %v", err)
	}
	if err := models.Migrate(db); err != nil {
		logger.Fatalf("error while running migration: %v", err)
	}
	logger.Info("migration was successful")
}
