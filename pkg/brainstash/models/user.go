package models

import (
	"time"
)

// User represents an account in the system. Usernames are stored
// lowercased and trimmed, so the unique index is effectively
// case-insensitive.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `json:"-"`

	// Relationships
	Contents []Content `gorm:"foreignKey:UserID" json:"contents,omitempty"`
	Tags     []Tag     `gorm:"foreignKey:UserID" json:"tags,omitempty"`
}
