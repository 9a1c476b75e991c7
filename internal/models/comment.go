package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a story.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	StoryID   uint           `gorm:"not null;index" json:"story_id"`
	UserID    uint           `gorm:"not null" json:"user_id"`
	Content   string         `gorm:"not null" json:"content"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Story     Story          `gorm:"foreignKey:StoryID" json:"story,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
