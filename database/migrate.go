package database

import (
	"fmt"
	"log"

	"organmatch_backend/internal/config"
	"organmatch_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm initializes GORM with the DSN from config.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates every registry model.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.Donor{},
		&models.Recipient{},
		&models.Allocation{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("AutoMigrate completed")
	return nil
}
