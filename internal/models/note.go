package models

import (
	"time"
)

type Note struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Priority  int       `gorm:"not null;default:0" json:"priority"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex:idx_notes_slug;not null" json:"slug"`
	UserID    uint64    `gorm:"not null;index:idx_notes_user_id" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
