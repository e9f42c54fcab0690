package config

import (
	"fmt"

	"recipe-hub/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DSN prefers DATABASE_URL and otherwise assembles one from the DB_* keys.
func DSN() string {
	if url := utils.GetConfig("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
	)
}

func ConnectDB() (*gorm.DB, error) {
	utils.LoadConfig()
	return OpenDB(DSN())
}

// OpenDB opens a postgres connection with driver errors translated, so a
// unique violation surfaces as gorm.ErrDuplicatedKey.
func OpenDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}
