package server

import (
	"context"
	"encoding/json"

	"umoja/internal/middleware"
	"umoja/internal/models"
)

// Event type constants prevent typos in event names.
const (
	EventStoryLiked     = "story_liked"
	EventCommentCreated = "comment_created"
	EventNotification   = "notification"
)

// publishUserEvent delivers an event to every websocket connection owned by
// userID. When Redis is active the event goes through Pub/Sub only; the
// pattern subscriber feeds this instance's hub alongside its peers, so an
// additional direct broadcast would hand local recipients the event twice.
func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		middleware.Logger.Error("failed to marshal event", "event", eventType, "error", err)
		return
	}
	message := string(eventJSON)
	if s.notifier != nil {
		err := s.notifier.PublishUser(context.Background(), userID, message)
		if err == nil {
			return
		}
		middleware.Logger.Error("failed to publish user event, delivering locally",
			"event", eventType, "user_id", userID, "error", err)
	}
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
}

func userSummary(user models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":           user.ID,
		"username":     user.Username,
		"display_name": user.DisplayName,
		"avatar_url":   user.AvatarURL,
	}
}

func userSummaryPtr(user *models.User) map[string]interface{} {
	if user == nil {
		return nil
	}
	return userSummary(*user)
}
