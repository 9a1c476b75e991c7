package server

import (
	"net/http"
	"testing"

	"umoja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storyResponse struct {
	ID            uint   `json:"id"`
	UserID        uint   `json:"user_id"`
	Content       string `json:"content"`
	CommentsCount int64  `json:"comments_count"`
	Likes         int64  `json:"likes"`
	Liked         bool   `json:"liked"`
}

func TestCreateStory(t *testing.T) {
	app, srv, db := newTestServer(t)
	user := createTestUser(t, db, "amina")

	t.Run("Success", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/stories", map[string]any{
			"content": "First day volunteering at the learning center",
		}, bearer(t, srv, user))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body storyResponse
		decodeJSON(t, resp, &body)
		assert.Equal(t, user.ID, body.UserID)
		assert.Equal(t, int64(0), body.CommentsCount)
		assert.Equal(t, int64(0), body.Likes)
	})

	t.Run("Author Comes From Session Not Body", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/stories", map[string]any{
			"content": "spoofed author",
			"user_id": 9999,
		}, bearer(t, srv, user))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body storyResponse
		decodeJSON(t, resp, &body)
		assert.Equal(t, user.ID, body.UserID)
	})

	t.Run("Empty Content", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/stories", map[string]any{
			"content": "   ",
		}, bearer(t, srv, user))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unauthenticated Creates Nothing", func(t *testing.T) {
		var before int64
		require.NoError(t, db.Model(&models.Story{}).Count(&before).Error)

		resp := doJSON(t, app, http.MethodPost, "/api/stories", map[string]any{
			"content": "should not persist",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var after int64
		require.NoError(t, db.Model(&models.Story{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})
}

func TestGetStories(t *testing.T) {
	app, srv, db := newTestServer(t)
	author := createTestUser(t, db, "amina")
	reader := createTestUser(t, db, "joseph")
	first := createTestStory(t, db, author.ID, "older story")
	second := createTestStory(t, db, author.ID, "newer story")

	// reader likes the older story
	resp := doJSON(t, app, http.MethodPost, "/api/stories/"+itoa(first.ID)+"/like", nil, bearer(t, srv, reader))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("Anonymous Feed Newest First Without Liked", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/stories", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed []storyResponse
		decodeJSON(t, resp, &feed)
		require.Len(t, feed, 2)
		assert.Equal(t, second.ID, feed[0].ID)
		assert.Equal(t, first.ID, feed[1].ID)
		assert.False(t, feed[0].Liked)
		assert.False(t, feed[1].Liked)
		assert.Equal(t, int64(1), feed[1].Likes)
	})

	t.Run("Authenticated Feed Carries Liked Flags", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/stories", nil, bearer(t, srv, reader))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed []storyResponse
		decodeJSON(t, resp, &feed)
		require.Len(t, feed, 2)
		assert.False(t, feed[0].Liked)
		assert.True(t, feed[1].Liked)
	})

	t.Run("Pagination", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/stories?limit=1&offset=1", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed []storyResponse
		decodeJSON(t, resp, &feed)
		require.Len(t, feed, 1)
		assert.Equal(t, first.ID, feed[0].ID)
	})
}

func TestGetStories_DefaultReturnsFullFeed(t *testing.T) {
	app, _, db := newTestServer(t)
	author := createTestUser(t, db, "amina")
	const total = 25
	for i := 0; i < total; i++ {
		createTestStory(t, db, author.ID, "story "+itoa(uint(i)))
	}

	t.Run("No Params Returns Every Story", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/stories", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed []storyResponse
		decodeJSON(t, resp, &feed)
		assert.Len(t, feed, total)
	})

	t.Run("Explicit Limit Still Pages", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/stories?limit=10", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed []storyResponse
		decodeJSON(t, resp, &feed)
		assert.Len(t, feed, 10)
	})

	t.Run("User Stories Default Is Unpaginated Too", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/"+itoa(author.ID)+"/stories", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed []storyResponse
		decodeJSON(t, resp, &feed)
		assert.Len(t, feed, total)
	})
}

func TestGetStory(t *testing.T) {
	app, _, db := newTestServer(t)
	author := createTestUser(t, db, "amina")
	story := createTestStory(t, db, author.ID, "hello")

	t.Run("Found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/stories/"+itoa(story.ID), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body storyResponse
		decodeJSON(t, resp, &body)
		assert.Equal(t, story.ID, body.ID)
	})

	t.Run("Not Found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/stories/9999", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Bad ID", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/stories/abc", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestToggleLike(t *testing.T) {
	app, srv, db := newTestServer(t)
	author := createTestUser(t, db, "amina")
	liker := createTestUser(t, db, "joseph")
	story := createTestStory(t, db, author.ID, "like me")
	path := "/api/stories/" + itoa(story.ID) + "/like"

	t.Run("Round Trip Restores Count", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, path, nil, bearer(t, srv, liker))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var liked storyResponse
		decodeJSON(t, resp, &liked)
		assert.True(t, liked.Liked)
		assert.Equal(t, int64(1), liked.Likes)

		resp = doJSON(t, app, http.MethodPost, path, nil, bearer(t, srv, liker))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var unliked storyResponse
		decodeJSON(t, resp, &unliked)
		assert.False(t, unliked.Liked)
		assert.Equal(t, int64(0), unliked.Likes)

		var rows int64
		require.NoError(t, db.Model(&models.Like{}).Where("story_id = ?", story.ID).Count(&rows).Error)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("Like Notifies Owner Once", func(t *testing.T) {
		require.NoError(t, db.Where("1 = 1").Delete(&models.Notification{}).Error)

		resp := doJSON(t, app, http.MethodPost, path, nil, bearer(t, srv, liker))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var notifs []models.Notification
		require.NoError(t, db.Find(&notifs).Error)
		require.Len(t, notifs, 1)
		assert.Equal(t, author.ID, notifs[0].UserID)
		assert.Equal(t, liker.ID, notifs[0].ActorID)
		assert.Equal(t, models.NotificationTypeLike, notifs[0].Type)
		assert.Equal(t, story.ID, notifs[0].StoryID)

		// Unlike must not notify.
		resp = doJSON(t, app, http.MethodPost, path, nil, bearer(t, srv, liker))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var count int64
		require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("No Self Notification", func(t *testing.T) {
		require.NoError(t, db.Where("1 = 1").Delete(&models.Notification{}).Error)
		own := createTestStory(t, db, author.ID, "my own story")

		resp := doJSON(t, app, http.MethodPost, "/api/stories/"+itoa(own.ID)+"/like", nil, bearer(t, srv, author))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Unknown Story", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/stories/9999/like", nil, bearer(t, srv, liker))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetUserStories(t *testing.T) {
	app, _, db := newTestServer(t)
	author := createTestUser(t, db, "amina")
	createTestStory(t, db, author.ID, "a story")

	t.Run("Found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/"+itoa(author.ID)+"/stories", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed []storyResponse
		decodeJSON(t, resp, &feed)
		assert.Len(t, feed, 1)
	})

	t.Run("Unknown User Is 404 Not Empty", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/9999/stories", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
