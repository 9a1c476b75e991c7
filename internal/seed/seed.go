package seed

import (
	"fmt"
	"log"

	"umoja/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumStories  int
	ShouldClean bool
	SkipBcrypt  bool
	// MaxDays bounds how far back generated story timestamps spread.
	MaxDays int
}

// Seed populates the database with demo users, stories, comments, likes and
// the notifications those interactions would have produced.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("seeding database with %d users and %d stories", opts.NumUsers, opts.NumStories)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("warning: could not clear all existing data, continuing anyway")
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	stories := make([]*models.Story, 0, opts.NumStories)
	for i := 0; i < opts.NumStories; i++ {
		stories = append(stories, f.BuildStory(users[f.rng.Intn(len(users))]))
	}
	if err := f.CreateStoriesBatch(stories); err != nil {
		return fmt.Errorf("failed to create stories: %w", err)
	}
	log.Printf("created %d stories", len(stories))

	var comments, likes int
	for _, story := range stories {
		// Each story draws a handful of reactions from other users.
		for _, user := range pickOthers(f, users, story.UserID, 3) {
			if _, err := f.CreateComment(user, story); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			comments++
			if _, err := f.CreateNotification(user, story, models.NotificationTypeComment); err != nil {
				return fmt.Errorf("failed to create notification: %w", err)
			}
		}
		for _, user := range pickOthers(f, users, story.UserID, 5) {
			if err := f.CreateLike(user, story); err != nil {
				return fmt.Errorf("failed to create like: %w", err)
			}
			likes++
			if _, err := f.CreateNotification(user, story, models.NotificationTypeLike); err != nil {
				return fmt.Errorf("failed to create notification: %w", err)
			}
		}
	}
	log.Printf("created %d comments and %d likes", comments, likes)

	log.Println("database seeding completed")
	return nil
}

// pickOthers returns up to n distinct random users excluding the given owner.
func pickOthers(f *Factory, users []*models.User, ownerID uint, n int) []*models.User {
	picked := make([]*models.User, 0, n)
	seen := map[uint]bool{ownerID: true}
	count := f.rng.Intn(n + 1)
	for attempts := 0; len(picked) < count && attempts < 10*(n+1); attempts++ {
		candidate := users[f.rng.Intn(len(users))]
		if seen[candidate.ID] {
			continue
		}
		seen[candidate.ID] = true
		picked = append(picked, candidate)
	}
	return picked
}

func clearData(db *gorm.DB) error {
	log.Println("clearing existing data")
	sql := `TRUNCATE TABLE notifications, likes, comments, stories, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
