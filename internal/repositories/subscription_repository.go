package repositories

import (
	"context"

	"github.com/anonto42/blogs/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository defines the interface for subscription and read-state operations
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	GetSubscription(ctx context.Context, ownerID, blogID uint) (*models.Subscription, error)
	DeleteSubscription(ctx context.Context, ownerID, blogID uint) error
	MarkRead(ctx context.Context, sub *models.Subscription, post *models.Post) error
	IsRead(ctx context.Context, subscriptionID, postID uint) (bool, error)
	GetSubscriberEmails(ctx context.Context, blogID uint) ([]string, error)
}

// PostgresSubscriptionRepository implements SubscriptionRepository on top of GORM
type PostgresSubscriptionRepository struct {
	db *gorm.DB
}

// NewPostgresSubscriptionRepository creates a new PostgresSubscriptionRepository
func NewPostgresSubscriptionRepository(db *gorm.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

// CreateSubscription inserts the pair; a second subscription to the same blog
// is rejected by idx_subscription_owner_blog and reported as ErrDuplicate.
func (r *PostgresSubscriptionRepository) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	return translate(r.db.WithContext(ctx).Omit("Owner", "Blog").Create(sub).Error)
}

func (r *PostgresSubscriptionRepository) GetSubscription(ctx context.Context, ownerID, blogID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND blog_id = ?", ownerID, blogID).
		First(&sub).Error
	if err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (r *PostgresSubscriptionRepository) DeleteSubscription(ctx context.Context, ownerID, blogID uint) error {
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND blog_id = ?", ownerID, blogID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkRead adds the post to the subscription's read-set. Marking twice is a no-op.
func (r *PostgresSubscriptionRepository) MarkRead(ctx context.Context, sub *models.Subscription, post *models.Post) error {
	if post.BlogID != sub.BlogID {
		return ErrForeignPost
	}
	mark := &models.SubscriptionReadPost{SubscriptionID: sub.ID, PostID: post.ID}
	err := r.db.WithContext(ctx).
		Omit("Subscription", "Post").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(mark).Error
	return translate(err)
}

func (r *PostgresSubscriptionRepository) IsRead(ctx context.Context, subscriptionID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionReadPost{}).
		Where("subscription_id = ? AND post_id = ?", subscriptionID, postID).
		Count(&count).Error
	return count > 0, err
}

// GetSubscriberEmails returns the non-empty email addresses of everyone subscribed to the blog.
func (r *PostgresSubscriptionRepository) GetSubscriberEmails(ctx context.Context, blogID uint) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Joins("JOIN users ON users.id = subscriptions.owner_id").
		Where("subscriptions.blog_id = ? AND users.email <> ''", blogID).
		Order("subscriptions.id").
		Pluck("users.email", &emails).Error
	return emails, err
}
