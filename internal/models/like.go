package models

import "time"

// Like represents a user's like on a story.
// The combination of UserID and StoryID must be unique; unlike is a hard
// delete so the likes count can be derived by a plain COUNT.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_story" json:"user_id"`
	StoryID   uint      `gorm:"not null;uniqueIndex:idx_user_story" json:"story_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Story Story `gorm:"foreignKey:StoryID" json:"story,omitempty"`
}
