package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"portfolio/internal/model"
)

// Models lists every persisted model in creation order.
func Models() []interface{} {
	return []interface{}{
		&model.Admin{},
		&model.Project{},
		&model.Testimonial{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table. Missing tables are only logged.
func Reset(db *gorm.DB, logger *zap.Logger) {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			logger.Warn("drop table failed (may not exist)", zap.Error(err))
		}
	}
	logger.Info("tables dropped")
}
