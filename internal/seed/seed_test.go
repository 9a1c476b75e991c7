package seed

import (
	"testing"

	"umoja/internal/database"
	"umoja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestFactoryCreateUser(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)
	assert.NotEmpty(t, user.Password)

	named, err := f.CreateUser(func(u *models.User) {
		u.Username = "fixed_name"
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed_name", named.Username)
}

func TestFactoryCreateStoryAndReactions(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true, MaxDays: 7})

	author, err := f.CreateUser()
	require.NoError(t, err)
	fan, err := f.CreateUser()
	require.NoError(t, err)

	story, err := f.CreateStory(author)
	require.NoError(t, err)
	assert.Equal(t, author.ID, story.UserID)
	assert.NotEmpty(t, story.Content)

	comment, err := f.CreateComment(fan, story)
	require.NoError(t, err)
	assert.Equal(t, story.ID, comment.StoryID)

	require.NoError(t, f.CreateLike(fan, story))

	n, err := f.CreateNotification(fan, story, models.NotificationTypeLike)
	require.NoError(t, err)
	assert.Equal(t, author.ID, n.UserID)
	assert.Equal(t, fan.ID, n.ActorID)
}

func TestSeedPopulatesAllTables(t *testing.T) {
	db := setupSeedDB(t)

	err := Seed(db, Options{NumUsers: 5, NumStories: 10, SkipBcrypt: true})
	require.NoError(t, err)

	var users, stories int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Story{}).Count(&stories).Error)
	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(10), stories)

	// Every notification must target the owner of its story, never the actor.
	var notifs []models.Notification
	require.NoError(t, db.Find(&notifs).Error)
	for _, n := range notifs {
		var story models.Story
		require.NoError(t, db.First(&story, n.StoryID).Error)
		assert.Equal(t, story.UserID, n.UserID)
		assert.NotEqual(t, n.ActorID, n.UserID)
	}
}
