package server

import (
	"umoja/internal/models"
	"umoja/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// Upload handles POST /api/upload. A single multipart field named "image" is
// accepted up to 5 MiB and handed to the object store, which returns the URL
// clients embed in stories.
func (s *Server) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	if fileHeader.Size > storage.MaxUploadSize {
		return models.RespondWithError(c, fiber.StatusRequestEntityTooLarge,
			models.NewValidationError("File too large (max 5MB)"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unreadable upload"))
	}
	defer func() { _ = f.Close() }()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := s.store.Put(c.Context(), fileHeader.Filename, contentType, f)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"url": url})
}
