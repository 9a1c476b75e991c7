package server

import (
	"umoja/internal/cache"
	"umoja/internal/middleware"
	"umoja/internal/models"
	"umoja/internal/observability"
	"umoja/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

// GetStories handles GET /api/stories. The feed is public; an authenticated
// caller additionally gets per-story liked flags. Without explicit limit and
// offset parameters the whole feed is returned, newest first.
func (s *Server) GetStories(c *fiber.Ctx) error {
	p := parsePagination(c, 0)
	currentUserID, _ := s.optionalUserID(c)

	var stories []*models.Story
	var err error

	if currentUserID == 0 && s.flags.Enabled("feed_cache", 0) {
		// Anonymous feed pages are identical for everyone, so cache them.
		key := cache.StoriesListKey(p.Limit, p.Offset)
		err = cache.Aside(c.UserContext(), key, &stories, cache.StoriesListTTL, func() error {
			var fetchErr error
			stories, fetchErr = s.storyRepo.List(c.Context(), p.Limit, p.Offset, 0)
			return fetchErr
		})
	} else {
		stories, err = s.storyRepo.List(c.Context(), p.Limit, p.Offset, currentUserID)
	}

	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if stories == nil {
		stories = []*models.Story{}
	}
	return c.JSON(stories)
}

// GetStory handles GET /api/stories/:id
func (s *Server) GetStory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	story, err := s.storyRepo.GetByID(c.Context(), id, currentUserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(story)
}

// CreateStory handles POST /api/stories. The author is always the
// authenticated caller; a user_id in the body is ignored.
func (s *Server) CreateStory(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string   `json:"content"`
		Images  []string `json:"images"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateStoryContent(req.Content); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	story := &models.Story{
		UserID:  userID,
		Content: req.Content,
		Images:  req.Images,
	}
	if err := s.storyRepo.Create(c.Context(), story); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// Re-read so the response carries the author and computed fields.
	created, err := s.storyRepo.GetByID(c.Context(), story.ID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetUserStories handles GET /api/users/:id/stories. All of the user's
// stories are returned unless the caller paginates explicitly.
func (s *Server) GetUserStories(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 0)
	currentUserID, _ := s.optionalUserID(c)

	// 404 for unknown users, not an empty list.
	if _, err := s.userRepo.GetByID(c.Context(), id); err != nil {
		return respondError(c, err)
	}

	stories, err := s.storyRepo.GetByUserID(c.Context(), id, p.Limit, p.Offset, currentUserID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if stories == nil {
		stories = []*models.Story{}
	}
	return c.JSON(stories)
}

// GetStoryLiked handles GET /api/stories/:id/liked
func (s *Server) GetStoryLiked(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if _, err := s.storyRepo.GetByID(c.Context(), id, 0); err != nil {
		return respondError(c, err)
	}

	liked, err := s.storyRepo.IsLiked(c.Context(), userID, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// ToggleLike handles POST /api/stories/:id/like. A first toggle likes the
// story and notifies its owner; a second toggle removes the like. The toggle
// itself runs in one transaction so concurrent requests cannot double-count.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	story, err := s.storyRepo.GetByID(c.Context(), id, userID)
	if err != nil {
		return respondError(c, err)
	}

	liked, err := s.storyRepo.ToggleLike(c.Context(), userID, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	outcome := "unliked"
	if liked {
		outcome = "liked"
	}
	observability.AddTraceAttributesToContext(c.UserContext(),
		attribute.String("like.outcome", outcome))

	if liked {
		observability.LikeToggles.WithLabelValues("liked").Inc()
		// The notification target is the story owner from the database,
		// never anything client-supplied. Liking your own story stays quiet.
		if story.UserID != userID {
			s.notifyStoryOwner(c, story, userID, models.NotificationTypeLike, EventStoryLiked)
		}
	} else {
		observability.LikeToggles.WithLabelValues("unliked").Inc()
	}

	updated, err := s.storyRepo.GetByID(c.Context(), id, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// notifyStoryOwner persists a notification row for the story owner and pushes
// a realtime event to their connections.
func (s *Server) notifyStoryOwner(c *fiber.Ctx, story *models.Story, actorID uint, notifType, eventType string) {
	span, ctx := observability.NewSpan(c.UserContext(), "notify.story_owner")
	defer span.End()
	span.AddAttributes(
		attribute.String("notification.type", notifType),
		attribute.Int("story.id", int(story.ID)),
	)

	n := &models.Notification{
		UserID:  story.UserID,
		Type:    notifType,
		ActorID: actorID,
		StoryID: story.ID,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		span.SetError(err)
		middleware.Logger.ErrorContext(ctx, "failed to create notification",
			"type", notifType, "story_id", story.ID, "error", err)
		return
	}
	middleware.NotificationsCreated.WithLabelValues(notifType).Inc()

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		span.SetError(err)
		middleware.Logger.WarnContext(ctx, "failed to load actor for event",
			"actor_id", actorID, "error", err)
	}

	payload := map[string]interface{}{
		"notification_id": n.ID,
		"story_id":        story.ID,
		"actor":           userSummaryPtr(actor),
	}
	if traceID := span.TraceID(); traceID != "" {
		payload["trace_id"] = traceID
	}
	s.publishUserEvent(story.UserID, eventType, payload)
}
