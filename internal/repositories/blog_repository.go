package repositories

import (
	"context"

	"github.com/anonto42/blogs/backend/internal/models"
	"gorm.io/gorm"
)

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error)
	GetBlogByOwner(ctx context.Context, ownerID uint) (*models.Blog, error)
	UpdateBlog(ctx context.Context, blog *models.Blog) error
	DeleteBlog(ctx context.Context, id uint) error
	ListBlogs(ctx context.Context, skip, limit int) ([]models.Blog, int64, error)
	ListBlogsForViewer(ctx context.Context, viewerID uint, skip, limit int) ([]models.Blog, int64, error)
}

// PostgresBlogRepository implements BlogRepository on top of GORM
type PostgresBlogRepository struct {
	db *gorm.DB
}

// NewPostgresBlogRepository creates a new PostgresBlogRepository
func NewPostgresBlogRepository(db *gorm.DB) *PostgresBlogRepository {
	return &PostgresBlogRepository{db: db}
}

// CreateBlog inserts the blog; the slug is derived in Blog.BeforeSave.
func (r *PostgresBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Create(blog).Error)
}

func (r *PostgresBlogRepository) GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).Preload("Owner").Where("slug = ?", slug).First(&blog).Error; err != nil {
		return nil, translate(err)
	}
	return &blog, nil
}

func (r *PostgresBlogRepository) GetBlogByOwner(ctx context.Context, ownerID uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&blog).Error; err != nil {
		return nil, translate(err)
	}
	return &blog, nil
}

// UpdateBlog saves every column, so the slug follows the current name.
func (r *PostgresBlogRepository) UpdateBlog(ctx context.Context, blog *models.Blog) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Save(blog).Error)
}

// DeleteBlog removes the blog; posts, subscriptions and read markers go with it.
func (r *PostgresBlogRepository) DeleteBlog(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Blog{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBlogs returns a page of blogs without viewer annotations.
func (r *PostgresBlogRepository) ListBlogs(ctx context.Context, skip, limit int) ([]models.Blog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Blog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []models.Blog
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("blogs.id").
		Offset(skip).Limit(limit).
		Find(&blogs).Error
	return blogs, total, err
}

// ListBlogsForViewer returns a page of blogs with HasSubscription set for the viewer.
func (r *PostgresBlogRepository) ListBlogsForViewer(ctx context.Context, viewerID uint, skip, limit int) ([]models.Blog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Blog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []models.Blog
	err := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Select("blogs.*, CASE WHEN blogs.id IN (?) THEN TRUE ELSE FALSE END AS has_subscription", subscribedBlogIDs(r.db, viewerID)).
		Preload("Owner").
		Order("blogs.id").
		Offset(skip).Limit(limit).
		Find(&blogs).Error
	return blogs, total, err
}
