package server

import (
	"net/http"
	"testing"

	"umoja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentResponse struct {
	ID      uint   `json:"id"`
	StoryID uint   `json:"story_id"`
	UserID  uint   `json:"user_id"`
	Content string `json:"content"`
	User    struct {
		Username string `json:"username"`
	} `json:"user"`
}

func TestCreateComment(t *testing.T) {
	app, srv, db := newTestServer(t)
	author := createTestUser(t, db, "amina")
	commenter := createTestUser(t, db, "joseph")
	story := createTestStory(t, db, author.ID, "talk to me")
	path := "/api/stories/" + itoa(story.ID) + "/comments"

	t.Run("Success Notifies Owner Exactly Once", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, path, map[string]string{
			"content": "Karibu! Great initiative.",
		}, bearer(t, srv, commenter))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body commentResponse
		decodeJSON(t, resp, &body)
		assert.Equal(t, story.ID, body.StoryID)
		assert.Equal(t, commenter.ID, body.UserID)
		assert.Equal(t, "joseph", body.User.Username)

		var notifs []models.Notification
		require.NoError(t, db.Find(&notifs).Error)
		require.Len(t, notifs, 1)
		assert.Equal(t, author.ID, notifs[0].UserID)
		assert.Equal(t, commenter.ID, notifs[0].ActorID)
		assert.Equal(t, models.NotificationTypeComment, notifs[0].Type)
	})

	t.Run("Own Story No Notification", func(t *testing.T) {
		require.NoError(t, db.Where("1 = 1").Delete(&models.Notification{}).Error)

		resp := doJSON(t, app, http.MethodPost, path, map[string]string{
			"content": "Replying to my own story",
		}, bearer(t, srv, author))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Empty Content", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, path, map[string]string{
			"content": "  ",
		}, bearer(t, srv, commenter))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown Story", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/stories/9999/comments", map[string]string{
			"content": "into the void",
		}, bearer(t, srv, commenter))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Requires Auth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, path, map[string]string{
			"content": "anonymous comment",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetComments(t *testing.T) {
	app, srv, db := newTestServer(t)
	author := createTestUser(t, db, "amina")
	commenter := createTestUser(t, db, "joseph")
	story := createTestStory(t, db, author.ID, "busy thread")
	path := "/api/stories/" + itoa(story.ID) + "/comments"

	for _, content := range []string{"first", "second"} {
		resp := doJSON(t, app, http.MethodPost, path, map[string]string{
			"content": content,
		}, bearer(t, srv, commenter))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	t.Run("Public And Newest First", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var comments []commentResponse
		decodeJSON(t, resp, &comments)
		require.Len(t, comments, 2)
		assert.Greater(t, comments[0].ID, comments[1].ID)
	})

	t.Run("Unknown Story", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/stories/9999/comments", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Story Comment Count Reflects Thread", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/stories/"+itoa(story.ID), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body storyResponse
		decodeJSON(t, resp, &body)
		assert.Equal(t, int64(2), body.CommentsCount)
	})
}
