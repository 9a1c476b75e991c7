package models

import "time"

// Notification types generated by the application.
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
)

// Notification is an event record generated when someone likes or comments
// on a user's story. UserID is the recipient (the story owner, resolved
// server-side), ActorID is the user who triggered the event.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"not null" json:"type"`
	ActorID   uint      `gorm:"not null" json:"actor_id"`
	StoryID   uint      `gorm:"not null" json:"story_id"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`

	Actor User  `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Story Story `gorm:"foreignKey:StoryID" json:"story,omitempty"`
}
