package models

import (
	"strings"
	"time"
)

// ContentType enumerates the kinds of saved items
type ContentType string

const (
	ContentTypeLink  ContentType = "link"
	ContentTypeImage ContentType = "image"
	ContentTypeVideo ContentType = "video"
	ContentTypeText  ContentType = "text"
)

// ParseContentType normalizes and validates a content type value.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseContentType(s string) (ContentType, bool) {
	switch ContentType(strings.ToLower(strings.TrimSpace(s))) {
	case ContentTypeLink:
		return ContentTypeLink, true
	case ContentTypeImage:
		return ContentTypeImage, true
	case ContentTypeVideo:
		return ContentTypeVideo, true
	case ContentTypeText:
		return ContentTypeText, true
	}
	return "", false
}

// Content represents a saved bookmark-like item
type Content struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Link          string      `gorm:"not null" json:"link"`
	TypeOfContent ContentType `gorm:"type:varchar(20);not null" json:"typeofContent"`
	Title         string      `gorm:"not null" json:"title"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`

	// Relationships
	User User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tags []Tag `gorm:"many2many:content_tags;" json:"tags,omitempty"`
}

// ContentTag is the content<->tag join row. Rows are written directly
// on content creation so tag references stay soft: a tag id that does
// not exist (or belongs to another user) produces a dangling row that
// simply drops out of joined reads. Deleting a tag does not clean up
// its join rows.
type ContentTag struct {
	ContentID uint `gorm:"primaryKey"`
	TagID     uint `gorm:"primaryKey"`
}
