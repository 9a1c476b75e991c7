package server

import (
	"umoja/internal/models"
	"umoja/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/stories/:id/comments. The whole thread is
// returned unless the caller paginates explicitly.
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 0)

	if _, err := s.storyRepo.GetByID(c.Context(), id, 0); err != nil {
		return respondError(c, err)
	}

	comments, err := s.commentRepo.GetByStoryID(c.Context(), id, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/stories/:id/comments. Exactly one
// notification row is written, targeted at the story owner looked up
// server-side. Commenting on your own story creates no notification.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateCommentContent(req.Content); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	story, err := s.storyRepo.GetByID(c.Context(), id, 0)
	if err != nil {
		return respondError(c, err)
	}

	comment := &models.Comment{
		StoryID: id,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(c.Context(), comment); err != nil {
		return respondError(c, err)
	}

	if story.UserID != userID {
		s.notifyStoryOwner(c, story, userID, models.NotificationTypeComment, EventCommentCreated)
	}

	created, err := s.commentRepo.GetByID(c.Context(), comment.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
