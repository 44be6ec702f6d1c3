package models

import (
	"time"
)

// ShareLink holds a user's public share token. Presence of a row is
// the on/off flag for public sharing. Token is unique across all
// users; the user_id unique index keeps it to at most one per owner.
type ShareLink struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
