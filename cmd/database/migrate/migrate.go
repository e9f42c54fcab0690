package migration

import (
	"fmt"

	"recipe-hub/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		log.Warnf("uuid-ossp extension unavailable: %v", err)
	}

	models := []any{
		&entities.User{},
		&entities.Recipe{},
		&entities.RecipeLike{},
		&entities.RecipeFavorite{},
		&entities.Comment{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrating %T: %w", m, err)
		}
	}

	log.Info("Database migration complete")
	return nil
}
