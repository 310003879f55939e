package models

import (
	"fmt"
	"time"
)

// Post is a timestamped article belonging to a blog
type Post struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	BlogID uint    `json:"blog_id" gorm:"not null;index"`
	Blog   *Blog   `json:"blog,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Title  string  `json:"title" gorm:"size:128;not null"`
	Text   *string `json:"text"`
	// CreatedAt is written on insert only.
	CreatedAt time.Time `json:"created_at" gorm:"<-:create;index"`
	UpdatedAt time.Time `json:"updated_at"`

	// IsRead is only populated by the feed query.
	IsRead *bool `json:"is_read,omitempty" gorm:"->;-:migration"`
}

// Path returns the canonical path of the post, relative to the site root.
func (p *Post) Path(blogSlug string) string {
	return fmt.Sprintf("/api/v1/blogs/%s/posts/%d", blogSlug, p.ID)
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title string  `json:"title" form:"title" validate:"required,min=1,max=128"`
	Text  *string `json:"text,omitempty" form:"text"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title string  `json:"title" form:"title" validate:"required,min=1,max=128"`
	Text  *string `json:"text,omitempty" form:"text"`
}
