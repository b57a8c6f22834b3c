package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/models"
)

// newTestDB opens a fresh in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.OpenDatabase(config.AppConfig{
		DBDriver:    "sqlite",
		DatabaseURI: ":memory:",
		LogLevel:    "silent",
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := config.Migrate(db, &models.User{}, &models.Post{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, name, password string) *models.User {
	t.Helper()
	user, err := NewAuthService(db).CreateUser(context.Background(), NewUser{
		Username: username,
		Name:     name,
		Password: password,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// insertPosts writes n posts for userID, one second apart starting at base, and
// returns their IDs oldest first.
func insertPosts(t *testing.T, db *gorm.DB, userID uint, n int, base time.Time) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		post := models.Post{
			Body:      "post body",
			UserID:    userID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := db.Create(&post).Error; err != nil {
			t.Fatalf("insert post: %v", err)
		}
		ids = append(ids, post.ID)
	}
	return ids
}
