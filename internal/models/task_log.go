package models

import "time"

// TaskSnapshot captures a task's mutable fields as they were immediately
// before an update. AssignedTo holds the assignee's display name at snapshot
// time, or "Unassigned".
type TaskSnapshot struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssignedTo  string       `json:"assignedTo"`
}

// TaskLog is an immutable audit record. Exactly one is written per
// successful task update; deleting a task leaves its logs in place.
type TaskLog struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	TaskID       uint64       `gorm:"not null;index" json:"taskId"`
	PreviousData TaskSnapshot `gorm:"embedded;embeddedPrefix:previous_" json:"previousData"`
	ChangedAt    time.Time    `gorm:"not null" json:"changedAt"`
	ChangedByID  uint64       `gorm:"not null" json:"changedById"`

	// Relations
	ChangedBy User `gorm:"foreignKey:ChangedByID" json:"-"`
}
