package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/lifeweeks-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Profile{},
		&types.WeekNote{},
	)
}

// EnsureNoteIndexes backs the upsert invariant: at most one week_note row
// per (year, week_of_year) coordinate.
func EnsureNoteIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_week_note_coordinate
		ON week_note (year, week_of_year);
	`).Error; err != nil {
		return fmt.Errorf("create idx_week_note_coordinate: %w", err)
	}
	return nil
}
