package repositories

import (
	"context"

	"github.com/anonto42/blogs/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetBlogPost(ctx context.Context, blogID, postID uint) (*models.Post, error)
	ListBlogPosts(ctx context.Context, blogID uint, skip, limit int) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) error
	GetFeed(ctx context.Context, userID uint, skip, limit int) ([]models.Post, int64, error)
}

// PostgresPostRepository implements PostRepository on top of GORM
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit("Blog").Create(post).Error)
}

// GetPostByID loads the post together with its blog.
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Blog").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetBlogPost(ctx context.Context, blogID, postID uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND blog_id = ?", postID, blogID).
		First(&post).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *PostgresPostRepository) ListBlogPosts(ctx context.Context, blogID uint, skip, limit int) ([]models.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("blog_id = ?", blogID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("blog_id = ?", blogID).
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// UpdatePost writes title and text only; created_at and blog_id never change.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).
		Model(post).
		Select("Title", "Text", "UpdatedAt").
		Updates(post)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetFeed returns posts of every blog the user subscribes to, newest first, with
// IsRead set from the distinct read-set across all of the user's subscriptions.
func (r *PostgresPostRepository) GetFeed(ctx context.Context, userID uint, skip, limit int) ([]models.Post, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("posts.blog_id IN (?)", subscribedBlogIDs(r.db, userID)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err = r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.*, CASE WHEN posts.id IN (?) THEN TRUE ELSE FALSE END AS is_read", readPostIDs(r.db, userID)).
		Where("posts.blog_id IN (?)", subscribedBlogIDs(r.db, userID)).
		Preload("Blog").
		Order("posts.created_at DESC, posts.id DESC").
		Offset(skip).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// subscribedBlogIDs is a subquery selecting the blog ids the user subscribes to.
func subscribedBlogIDs(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.Subscription{}).Select("blog_id").Where("owner_id = ?", userID)
}

// readPostIDs is a subquery selecting the distinct post ids read across the user's subscriptions.
func readPostIDs(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.SubscriptionReadPost{}).
		Distinct("subscription_read_posts.post_id").
		Joins("JOIN subscriptions ON subscriptions.id = subscription_read_posts.subscription_id").
		Where("subscriptions.owner_id = ?", userID)
}
