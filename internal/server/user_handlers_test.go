package server

import (
	"net/http"
	"testing"

	"umoja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserProfile(t *testing.T) {
	app, _, db := newTestServer(t)
	user := createTestUser(t, db, "amina")

	t.Run("Found Without Password", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/"+itoa(user.ID), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var raw map[string]any
		decodeJSON(t, resp, &raw)
		assert.Equal(t, "amina", raw["username"])
		assert.NotContains(t, raw, "password")
	})

	t.Run("Not Found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/9999", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Bad ID", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/abc", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateMyProfile(t *testing.T) {
	app, srv, db := newTestServer(t)
	user := createTestUser(t, db, "amina")

	t.Run("Partial Update", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/users/me", map[string]string{
			"display_name": "Amina H.",
			"bio":          "Teacher at the community school",
		}, bearer(t, srv, user))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.Equal(t, "Amina H.", stored.DisplayName)
		assert.Equal(t, "Teacher at the community school", stored.Bio)
	})

	t.Run("Omitted Fields Untouched", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/users/me", map[string]string{
			"avatar_url": "https://example.org/amina.png",
		}, bearer(t, srv, user))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.Equal(t, "Amina H.", stored.DisplayName)
		assert.Equal(t, "https://example.org/amina.png", stored.AvatarURL)
	})

	t.Run("Oversized Bio", func(t *testing.T) {
		long := make([]byte, 501)
		for i := range long {
			long[i] = 'a'
		}
		resp := doJSON(t, app, http.MethodPut, "/api/users/me", map[string]string{
			"bio": string(long),
		}, bearer(t, srv, user))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Requires Auth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/users/me", map[string]string{
			"bio": "anonymous edit",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
