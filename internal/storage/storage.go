// Package storage abstracts where uploaded files end up.
package storage

import (
	"context"
	"io"
)

// MaxUploadSize is the largest accepted upload in bytes (5 MiB).
const MaxUploadSize = 5 * 1024 * 1024

// ObjectStore saves uploaded objects and returns a publicly reachable URL.
type ObjectStore interface {
	Put(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
}

// PlaceholderStore discards upload bytes and hands back a fixed stock image
// URL. It stands in until a real object store (S3, GCS) is provisioned.
type PlaceholderStore struct {
	URL string
}

// DefaultPlaceholderURL is returned for every accepted upload.
const DefaultPlaceholderURL = "https://images.unsplash.com/photo-1487546331507-fcf8a5d27ab3"

// NewPlaceholderStore returns a PlaceholderStore with the default URL.
func NewPlaceholderStore() *PlaceholderStore {
	return &PlaceholderStore{URL: DefaultPlaceholderURL}
}

// Put consumes the reader so the request body is fully drained, then returns
// the placeholder URL.
func (s *PlaceholderStore) Put(_ context.Context, _ string, _ string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	url := s.URL
	if url == "" {
		url = DefaultPlaceholderURL
	}
	return url, nil
}
