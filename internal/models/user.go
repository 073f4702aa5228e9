package models

import (
	"time"
)

type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex:idx_users_username;not null" json:"username"`
	Firstname string    `gorm:"type:varchar(100)" json:"firstname"`
	Lastname  string    `gorm:"type:varchar(100)" json:"lastname"`
	Age       int       `json:"age"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex:idx_users_slug;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Notes []Note `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}
