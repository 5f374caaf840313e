package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task belongs to exactly one project. The project reference never changes
// after creation; title, description, status, priority and assignee are the
// only mutable fields.
type Task struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	ProjectID    uint64       `gorm:"not null" json:"projectId"`
	Title        string       `gorm:"type:varchar(255);not null" json:"title"`
	Description  string       `gorm:"type:text;not null" json:"description"`
	Status       TaskStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority     TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	AssignedToID *uint64      `json:"assignedToId"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`

	// Relations
	Project    Project `gorm:"foreignKey:ProjectID" json:"-"`
	AssignedTo *User   `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
}
