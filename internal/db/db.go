package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/room-booking/internal/config"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if !cfg.IsDevelopment() {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Master{},
		&models.Room{},
		&models.Order{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := seedCategories(db, cfg.DefaultCategory); err != nil {
		return nil, err
	}

	return db, nil
}

// seedCategories makes sure the category new masters are filed under exists.
func seedCategories(db *gorm.DB, name string) error {
	cat := models.Category{Name: name}
	if err := db.Where(models.Category{Name: name}).FirstOrCreate(&cat).Error; err != nil {
		return fmt.Errorf("seed default category: %w", err)
	}
	log.Debug().Uint("category_id", cat.ID).Str("name", name).Msg("default category ready")
	return nil
}
