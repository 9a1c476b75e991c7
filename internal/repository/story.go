package repository

import (
	"context"
	"errors"

	"umoja/internal/cache"
	"umoja/internal/models"
	"umoja/internal/observability"

	"gorm.io/gorm"
)

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Story, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Story, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Story, error)
	Update(ctx context.Context, story *models.Story) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, storyID uint) (bool, error)
	ToggleLike(ctx context.Context, userID, storyID uint) (bool, error)
	CountLikes(ctx context.Context, storyID uint) (int64, error)
}

type storyRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	defer r.metrics.TrackQuery("insert", "stories")()
	err := r.db.WithContext(ctx).Create(story).Error
	if err == nil {
		cache.InvalidateStoriesList(ctx)
	}
	return err
}

func (r *storyRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Story, error) {
	defer r.metrics.TrackQuery("select", "stories")()
	var story models.Story
	key := cache.StoryKey(id)

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, key, &story, cache.StoryTTL, func() error {
			return r.applyStoryDetails(r.db.WithContext(ctx), 0).
				Preload("User").
				First(&story, id).Error
		})
	} else {
		err = r.applyStoryDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&story, id).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Story", id)
		}
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Story, error) {
	defer r.metrics.TrackQuery("select", "stories")()
	var stories []*models.Story
	q := r.applyStoryDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC")
	err := applyWindow(q, limit, offset).Find(&stories).Error
	return stories, err
}

// List returns stories newest-first. A limit of 0 returns the full feed.
func (r *storyRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Story, error) {
	defer r.metrics.TrackQuery("select", "stories")()
	var stories []*models.Story
	q := r.applyStoryDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Order("created_at DESC")
	err := applyWindow(q, limit, offset).Find(&stories).Error
	return stories, err
}

// applyWindow adds LIMIT/OFFSET clauses only when they are positive, so a
// zero limit keeps full-feed semantics.
func applyWindow(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}

// applyStoryDetails adds subqueries to fetch counts and liked status in a single query.
// Counts are always derived from the likes and comments tables so they cannot drift.
func (r *storyRepository) applyStoryDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "stories.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.story_id = stories.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.story_id = stories.id) as likes"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.story_id = stories.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *storyRepository) Update(ctx context.Context, story *models.Story) error {
	if err := r.db.WithContext(ctx).Save(story).Error; err != nil {
		return err
	}
	cache.InvalidateStory(ctx, story.ID)
	return nil
}

func (r *storyRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Story{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateStory(ctx, id)
	return nil
}

func (r *storyRepository) IsLiked(ctx context.Context, userID, storyID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ToggleLike flips the like state for (userID, storyID) inside a single
// transaction and reports whether the story is liked afterwards. The insert
// uses ON CONFLICT DO NOTHING so two concurrent toggles serialize on the
// unique index instead of failing.
func (r *storyRepository) ToggleLike(ctx context.Context, userID, storyID uint) (bool, error) {
	defer r.metrics.TrackQuery("toggle_like", "likes")()
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			`INSERT INTO likes (user_id, story_id, created_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (user_id, story_id) DO NOTHING`,
			userID, storyID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = true
			return nil
		}
		// Already liked, so this toggle removes it. Hard delete so the
		// COUNT subqueries stay accurate.
		return tx.Unscoped().
			Where("user_id = ? AND story_id = ?", userID, storyID).
			Delete(&models.Like{}).Error
	})
	if err == nil {
		cache.InvalidateStory(ctx, storyID)
	}
	return liked, err
}

func (r *storyRepository) CountLikes(ctx context.Context, storyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("story_id = ?", storyID).
		Count(&count).Error
	return count, err
}
