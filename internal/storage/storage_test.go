package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderStore_Put(t *testing.T) {
	store := NewPlaceholderStore()

	url, err := store.Put(context.Background(), "photo.jpg", "image/jpeg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPlaceholderURL, url)
}

func TestPlaceholderStore_CustomURL(t *testing.T) {
	store := &PlaceholderStore{URL: "https://cdn.example.com/default.png"}

	url, err := store.Put(context.Background(), "a.png", "image/png", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/default.png", url)
}
