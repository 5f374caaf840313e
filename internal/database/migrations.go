package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for project listing and assignee visibility scans
		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_assigned_to_id", "assigned_to_id"},

		// Project indexes for creator-scoped listing
		{"projects", "idx_projects_created_by_id", "created_by_id"},

		// Task log indexes for per-task history reads
		{"task_logs", "idx_task_logs_task_id", "task_id"},
		{"task_logs", "idx_task_logs_changed_by_id", "changed_by_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
