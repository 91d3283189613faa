package db

import (
	"log"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/car-rental/internal/config"
	"github.com/BruksfildServices01/car-rental/internal/models"
)

// Open connects to PostgreSQL and sizes the pool.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	// search does LOWER(name) LIKE ...
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_cars_name_lower ON cars (LOWER(name))`).Error; err != nil {
		return errors.Wrap(err, "create search index")
	}

	return nil
}

// NewDB opens and migrates the database, exiting on failure.
func NewDB(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
