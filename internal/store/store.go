// Package store is the persistence collaborator: groups, members, the
// restaurant catalog and vote rows, backed by SQLite through GORM.
package store

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&groupRow{}, &memberRow{}, &restaurantRow{}, &likeRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	log.Info().Str("module", "store").Str("path", path).Msg("database ready")
	return &Store{db: db}, nil
}
