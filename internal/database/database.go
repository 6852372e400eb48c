package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/unimatch/campus-platform/internal/config"
	"github.com/unimatch/campus-platform/internal/logger"
	"github.com/unimatch/campus-platform/internal/models"
)

var DB *gorm.DB

var log = logger.New("database")

func Initialize(cfg *config.Config) error {
	var dialector gorm.Dialector

	switch cfg.DatabaseType {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return err
	}

	DB = db
	log.Infow("database connected", "type", cfg.DatabaseType)

	return AutoMigrate(db)
}

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Invitation{},
		&models.Conversation{},
		&models.Message{},
	)
}

func GetDB() *gorm.DB {
	return DB
}
