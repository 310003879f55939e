package models

import "time"

// Subscription represents a user following a blog
type Subscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;uniqueIndex:idx_subscription_owner_blog"`
	Owner     *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	BlogID    uint      `json:"blog_id" gorm:"not null;index;uniqueIndex:idx_subscription_owner_blog"`
	Blog      *Blog     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriptionReadPost marks a post as read within a subscription.
type SubscriptionReadPost struct {
	SubscriptionID uint          `json:"subscription_id" gorm:"primaryKey"`
	Subscription   *Subscription `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PostID         uint          `json:"post_id" gorm:"primaryKey;index"`
	Post           *Post         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ReadAt         time.Time     `json:"read_at" gorm:"autoCreateTime"`
}

func (SubscriptionReadPost) TableName() string {
	return "subscription_read_posts"
}
