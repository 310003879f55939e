package models

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/anonto42/blogs/backend/pkg/slug"
	"gorm.io/gorm"
)

// SlugMaxLength bounds the slug column; normalisation can make a slug longer than its name.
const SlugMaxLength = 64

var (
	// ErrEmptySlug is returned when a blog name yields no usable slug characters.
	ErrEmptySlug = errors.New("blog name must contain at least one letter or digit")
	// ErrSlugTooLong is returned when the normalised name does not fit the slug column.
	ErrSlugTooLong = errors.New("blog name is too long once normalised")
)

// Blog is a named channel owned by exactly one user.
type Blog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;uniqueIndex"`
	Owner     *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name      string    `json:"name" gorm:"size:64;not null;uniqueIndex"`
	Slug      string    `json:"slug" gorm:"size:64;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// HasSubscription is only populated by the subscription-aware listing.
	HasSubscription *bool `json:"has_subscription,omitempty" gorm:"->;-:migration"`
}

// BeforeSave regenerates the slug from the name on every save.
func (b *Blog) BeforeSave(tx *gorm.DB) error {
	b.Slug = slug.Make(b.Name)
	switch {
	case b.Slug == "":
		return ErrEmptySlug
	case utf8.RuneCountInString(b.Slug) > SlugMaxLength:
		return ErrSlugTooLong
	}
	return nil
}

// CreateBlogRequest defines the request body for creating a blog
type CreateBlogRequest struct {
	Name string `json:"name" form:"name" validate:"required,min=1,max=64"`
}

// UpdateBlogRequest defines the request body for renaming a blog
type UpdateBlogRequest struct {
	Name string `json:"name" form:"name" validate:"required,min=1,max=64"`
}
