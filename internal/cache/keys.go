package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache TTLs. Story content changes frequently, user profiles less so.
const (
	UserTTL        = 10 * time.Minute
	StoryTTL       = 2 * time.Minute
	StoriesListTTL = 30 * time.Second
)

// UserKey returns the cache key for a user profile.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// StoryKey returns the cache key for a single story.
func StoryKey(id uint) string {
	return fmt.Sprintf("story:%d", id)
}

// StoriesListKey returns the cache key for a page of the story feed.
func StoriesListKey(limit, offset int) string {
	return fmt.Sprintf("stories:list:%d:%d", limit, offset)
}

// Invalidate deletes the given keys from the cache. Best-effort.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateUser removes the cached user profile.
func InvalidateUser(ctx context.Context, id uint) {
	Invalidate(ctx, UserKey(id))
}

// InvalidateStory removes the cached story and all feed pages, since likes
// and comment counts are denormalized into both.
func InvalidateStory(ctx context.Context, id uint) {
	Invalidate(ctx, StoryKey(id))
	InvalidateStoriesList(ctx)
}

// InvalidateStoriesList removes all cached feed pages.
func InvalidateStoriesList(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "stories:list:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}
