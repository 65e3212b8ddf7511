package db

import (
	"github.com/taskdesk/backend/internal/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Task{},
		&domain.TimelineEvent{},
	)
	if err != nil {
		return err
	}

	return createCustomIndexes(db)
}

func createCustomIndexes(db *gorm.DB) error {
	// List order is insertion order
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tasks_created_order
		ON tasks (created_at, id)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_timeline_events_resource
		ON timeline_events (resource_type, resource_id)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	return nil
}
