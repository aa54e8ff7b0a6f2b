package database

import (
	"strings"

	"github.com/atlasops/planner-api/internal/config"
	"github.com/atlasops/planner-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the store. PostgreSQL when the URL starts with postgres,
// SQLite otherwise (dev and tests).
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Employee{},
		&models.Product{},
		&models.Milestone{},
		&models.ProductDoc{},
		&models.Formation{},
		&models.FormationMember{},
		&models.FormationInitiative{},
		&models.Initiative{},
		&models.InitiativeTransition{},
		&models.Todo{},
		&models.Thread{},
		&models.ThreadReply{},
		&models.Notification{},
	)
}
