package database

import (
	"log"
	"time"

	"padelwatch/config"
	"padelwatch/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is the global database handle. Repositories receive it explicitly;
// the global exists for health checks and shutdown.
var DB *gorm.DB

// InitDB opens the database connection, verifies it and migrates the
// schema.
func InitDB() *gorm.DB {
	db, err := gorm.Open(postgres.Open(config.AppConfig.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to access database pool: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate database schema: %v", err)
	}

	DB = db
	log.Println("Connected to database successfully!")
	return db
}

// Migrate applies the schema for every tracked entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Location{},
		&models.Court{},
		&models.Availability{},
		&models.SearchRequest{},
		&models.SearchOrder{},
		&models.SearchOrderNotification{},
	)
}
