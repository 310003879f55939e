// Package testutil provides a migrated in-memory database and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/blogs/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB opens a fresh in-memory SQLite database with foreign keys enforced
// and every model migrated. It is closed when the test ends.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given name and email.
func CreateUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %q: %v", email, err)
	}
	return user
}

// CreateBlog inserts a blog owned by owner.
func CreateBlog(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Blog {
	t.Helper()

	blog := &models.Blog{OwnerID: owner.ID, Name: name}
	if err := db.Create(blog).Error; err != nil {
		t.Fatalf("create blog %q: %v", name, err)
	}
	return blog
}

// CreatePost inserts a post into blog with an explicit creation time.
func CreatePost(t *testing.T, db *gorm.DB, blog *models.Blog, title string, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{BlogID: blog.ID, Title: title, CreatedAt: createdAt}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post %q: %v", title, err)
	}
	return post
}

// Subscribe subscribes user to blog.
func Subscribe(t *testing.T, db *gorm.DB, user *models.User, blog *models.Blog) *models.Subscription {
	t.Helper()

	sub := &models.Subscription{OwnerID: user.ID, BlogID: blog.ID}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("subscribe %d to %d: %v", user.ID, blog.ID, err)
	}
	return sub
}

// Email returns a distinct address for the n-th fixture user.
func Email(n int) string {
	return fmt.Sprintf("user%d@example.com", n)
}
