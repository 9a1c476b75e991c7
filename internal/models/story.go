package models

import (
	"time"

	"gorm.io/gorm"
)

// Story represents a user-authored post with text and optional images.
type Story struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	UserID  uint     `gorm:"not null;index" json:"user_id"`
	User    User     `gorm:"foreignKey:UserID" json:"user"`
	Content string   `gorm:"type:text;not null" json:"content"`
	Images  []string `gorm:"serializer:json;type:text" json:"images,omitempty"`
	// Likes is not persisted; computed at query time from the likes table so
	// the counter can never drift from the join rows.
	Likes int `gorm:"->" json:"likes"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this story (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
