package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trackline/task-tracker-api/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func auditFixture() (*models.Task, *models.TaskLog) {
	task := &models.Task{
		ID:          1,
		ProjectID:   2,
		Title:       "new title",
		Description: "d",
		Status:      models.TaskStatusInProgress,
		Priority:    models.TaskPriorityHigh,
	}
	logEntry := &models.TaskLog{
		TaskID: 1,
		PreviousData: models.TaskSnapshot{
			Title:       "old title",
			Description: "d",
			Status:      models.TaskStatusPending,
			Priority:    models.TaskPriorityMedium,
			AssignedTo:  "Unassigned",
		},
		ChangedAt:   time.Now(),
		ChangedByID: 3,
	}
	return task, logEntry
}

func TestUpdateWithLog_Commits(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)
	task, logEntry := auditFixture()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `task_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `tasks`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateWithLog(task, logEntry))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithLog_RollsBackWhenMutationFails(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)
	task, logEntry := auditFixture()

	// The audit record lands first; a failed overwrite must take the
	// snapshot down with it.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `task_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `tasks`").
		WillReturnError(errors.New("storage unavailable"))
	mock.ExpectRollback()

	err := repo.UpdateWithLog(task, logEntry)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithLog_AbortsWhenSnapshotFails(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)
	task, logEntry := auditFixture()

	// If the snapshot cannot be written the task is never touched.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `task_logs`").
		WillReturnError(errors.New("storage unavailable"))
	mock.ExpectRollback()

	err := repo.UpdateWithLog(task, logEntry)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
