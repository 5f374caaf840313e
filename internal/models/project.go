package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedByID uint64    `gorm:"not null" json:"createdById"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	CreatedBy User   `gorm:"foreignKey:CreatedByID" json:"-"`
	Tasks     []Task `gorm:"foreignKey:ProjectID" json:"-"`
}
