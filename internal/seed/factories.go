// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"umoja/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for demo data
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:    fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		DisplayName: gofakeit.Name(),
		Bio:         gofakeit.Sentence(10),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "Password123!demo"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123!demo"), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildStory constructs a story struct with a realistic created_at spread
// but does not persist it. Useful for batching.
func (f *Factory) BuildStory(user *models.User, overrides ...func(*models.Story)) *models.Story {
	story := &models.Story{
		UserID:  user.ID,
		Content: gofakeit.Paragraph(1, 3, 8, "\n"),
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	story.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	// Roughly a third of stories carry a photo.
	if f.rng.Intn(3) == 0 {
		story.Images = []string{fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())}
	}

	for _, override := range overrides {
		override(story)
	}
	return story
}

// CreateStory constructs and persists a sample `models.Story` for the given user.
func (f *Factory) CreateStory(user *models.User, overrides ...func(*models.Story)) (*models.Story, error) {
	story := f.BuildStory(user, overrides...)
	if err := f.db.Create(story).Error; err != nil {
		return nil, err
	}
	return story, nil
}

// CreateStoriesBatch persists multiple stories in a single DB call.
func (f *Factory) CreateStoriesBatch(stories []*models.Story) error {
	if len(stories) == 0 {
		return nil
	}
	return f.db.Create(&stories).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided story authored by the provided user.
func (f *Factory) CreateComment(user *models.User, story *models.Story, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		StoryID: story.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `story`. Duplicate likes from the
// same user are silently skipped so presets can be re-run.
func (f *Factory) CreateLike(user *models.User, story *models.Story) error {
	err := f.db.Create(&models.Like{UserID: user.ID, StoryID: story.ID}).Error
	if err != nil {
		log.Printf("seed: skipping duplicate like user=%d story=%d: %v", user.ID, story.ID, err)
	}
	return nil
}

// CreateNotification persists a notification for the story owner mirroring
// what the API writes when `actor` likes or comments on `story`.
func (f *Factory) CreateNotification(actor *models.User, story *models.Story, notifType string) (*models.Notification, error) {
	n := &models.Notification{
		UserID:  story.UserID,
		Type:    notifType,
		ActorID: actor.ID,
		StoryID: story.ID,
		Read:    f.rng.Intn(2) == 0,
	}
	if err := f.db.Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}
