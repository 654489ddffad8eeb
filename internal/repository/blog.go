package repository

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// engagementSelect computes like/bookmark/comment counts on the blog read path.
const engagementSelect = `blog_posts.*,
(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = blog_posts.id) AS likes_count,
(SELECT COUNT(*) FROM post_bookmarks WHERE post_bookmarks.post_id = blog_posts.id) AS bookmarks_count,
(SELECT COUNT(*) FROM comments WHERE comments.post_id = blog_posts.id AND comments.deleted_at IS NULL) AS comments_count`

// BlogRepository defines interface for blog post operations
type BlogRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	GetByID(ctx context.Context, id uint) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.BlogPost, int64, error)
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new BlogRepository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).
		Select(engagementSelect).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).
		Select(engagementSelect).
		Preload("Author").
		Where("blog_posts.slug = ?", slug).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.BlogPost, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.BlogPost{})
	if publishedOnly {
		q = q.Where("blog_posts.published = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.BlogPost
	err := q.Select(engagementSelect).
		Preload("Author").
		Order("blog_posts.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, total, err
}

func (r *blogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.BlogPost{}, id).Error
}

func (r *blogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Count(&count).Error
	return count, err
}
