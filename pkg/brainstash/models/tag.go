package models

import (
	"time"
)

// Tag represents a user-scoped label attachable to content items.
// The (title, user_id) pair is unique; two users can each own a
// "golang" tag without conflict.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `gorm:"uniqueIndex:idx_tags_title_user;not null" json:"title"`
	UserID    uint      `gorm:"uniqueIndex:idx_tags_title_user;not null" json:"user_id"`
}
