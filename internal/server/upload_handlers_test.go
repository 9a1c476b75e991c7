package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"umoja/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, field string, payload []byte) (*http.Request, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	return req, w.FormDataContentType()
}

func TestUpload(t *testing.T) {
	app, srv, db := newTestServer(t)
	user := createTestUser(t, db, "amina")

	t.Run("Returns Hosted URL", func(t *testing.T) {
		req, contentType := uploadRequest(t, "image", []byte("fake image bytes"))
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", bearer(t, srv, user))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			URL string `json:"url"`
		}
		decodeJSON(t, resp, &body)
		assert.Equal(t, storage.DefaultPlaceholderURL, body.URL)
	})

	t.Run("Missing File", func(t *testing.T) {
		req, contentType := uploadRequest(t, "document", []byte("wrong field"))
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", bearer(t, srv, user))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Too Large", func(t *testing.T) {
		req, contentType := uploadRequest(t, "image", make([]byte, storage.MaxUploadSize+1))
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", bearer(t, srv, user))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})

	t.Run("Requires Auth", func(t *testing.T) {
		req, contentType := uploadRequest(t, "image", []byte("fake image bytes"))
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
