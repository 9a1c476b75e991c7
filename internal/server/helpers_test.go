package server

import (
	"testing"

	"umoja/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"storyId", "story ID"},
		{"notificationId", "notification ID"},
		{"slug", "slug"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeParam(tt.param))
		})
	}
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = parsePagination(c, 20)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name  string
		query string
		want  Pagination
	}{
		{"Defaults", "", Pagination{Limit: 20, Offset: 0}},
		{"Explicit", "?limit=5&offset=10", Pagination{Limit: 5, Offset: 10}},
		{"Clamped To Max", "?limit=500", Pagination{Limit: 100, Offset: 0}},
		{"Negative Values", "?limit=-1&offset=-5", Pagination{Limit: 20, Offset: 0}},
		{"Garbage", "?limit=abc&offset=xyz", Pagination{Limit: 20, Offset: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, "GET", "/"+tt.query, nil, "")
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRespondStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, respondStatusFor(models.NewNotFoundError("User", 1)))
	assert.Equal(t, fiber.StatusBadRequest, respondStatusFor(models.NewValidationError("bad input")))
	assert.Equal(t, fiber.StatusInternalServerError, respondStatusFor(assert.AnError))
}
