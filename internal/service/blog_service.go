package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

// BlogService manages posts and their engagement toggles. Authoring is
// restricted to staff (admin or manager); managers touch only their own
// posts, admins any post. Unpublished posts are invisible on the public
// read path.
type BlogService struct {
	blogRepo       repository.BlogRepository
	engagementRepo repository.EngagementRepository
}

type CreatePostInput struct {
	ActorID  uint
	Title    string
	Body     string
	CoverURL string
}

type UpdatePostInput struct {
	ActorID   uint
	ActorRole string
	PostID    uint
	Title     *string
	Body      *string
	CoverURL  *string
}

func NewBlogService(blogRepo repository.BlogRepository, engagementRepo repository.EngagementRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo, engagementRepo: engagementRepo}
}

func (s *BlogService) CreatePost(ctx context.Context, in CreatePostInput) (*models.BlogPost, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("Body is required")
	}

	slug := Slugify(in.Title)
	if existing, err := s.blogRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, models.NewConflictError("A post with this title already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	post := &models.BlogPost{
		AuthorID: in.ActorID,
		Title:    in.Title,
		Slug:     slug,
		Body:     in.Body,
		CoverURL: in.CoverURL,
	}
	if err := s.blogRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.blogRepo.GetByID(ctx, post.ID)
}

func (s *BlogService) ListPosts(ctx context.Context, publishedOnly bool, limit, offset int) (*models.PostListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	posts, total, err := s.blogRepo.List(ctx, publishedOnly, limit, offset)
	if err != nil {
		return nil, err
	}

	return &models.PostListResponse{Posts: posts, Total: total, Limit: limit, Offset: offset}, nil
}

// GetPostBySlug is the public read, cached by slug. Only published posts
// are served; a draft reads as not found.
func (s *BlogService) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var cached models.BlogPost
	if cache.GetJSON(ctx, cache.BlogPostKey(slug), &cached) && cached.Published {
		return &cached, nil
	}

	post, err := s.blogRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", slug)
		}
		return nil, err
	}
	if !post.Published {
		return nil, models.NewNotFoundError("Post", slug)
	}

	cache.SetJSON(ctx, cache.BlogPostKey(slug), post, cache.BlogPostTTL)
	return post, nil
}

// GetPost is the staff read; drafts are visible.
func (s *BlogService) GetPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return post, nil
}

func (s *BlogService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.BlogPost, error) {
	post, err := s.postEditableBy(ctx, in.PostID, in.ActorID, in.ActorRole)
	if err != nil {
		return nil, err
	}
	oldSlug := post.Slug

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, models.NewValidationError("Title is required")
		}
		post.Title = *in.Title
		post.Slug = Slugify(*in.Title)
	}
	if in.Body != nil {
		if strings.TrimSpace(*in.Body) == "" {
			return nil, models.NewValidationError("Body is required")
		}
		post.Body = *in.Body
	}
	if in.CoverURL != nil {
		post.CoverURL = *in.CoverURL
	}

	if err := s.blogRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	cache.InvalidateBlogPost(ctx, oldSlug)
	if post.Slug != oldSlug {
		cache.InvalidateBlogPost(ctx, post.Slug)
	}

	return s.blogRepo.GetByID(ctx, post.ID)
}

// SetPublished flips a post between draft and published. The first
// publish stamps PublishedAt; unpublishing keeps the timestamp.
func (s *BlogService) SetPublished(ctx context.Context, actorID uint, actorRole string, postID uint, published bool) (*models.BlogPost, error) {
	post, err := s.postEditableBy(ctx, postID, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	post.Published = published
	if published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.blogRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	cache.InvalidateBlogPost(ctx, post.Slug)
	return s.blogRepo.GetByID(ctx, post.ID)
}

func (s *BlogService) DeletePost(ctx context.Context, actorID uint, actorRole string, postID uint) error {
	post, err := s.postEditableBy(ctx, postID, actorID, actorRole)
	if err != nil {
		return err
	}

	if err := s.blogRepo.Delete(ctx, postID); err != nil {
		return err
	}

	cache.InvalidateBlogPost(ctx, post.Slug)
	return nil
}

// ToggleLike flips the actor's like on a post.
func (s *BlogService) ToggleLike(ctx context.Context, actorID, postID uint) (*models.ToggleResponse, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	liked, likes, err := s.engagementRepo.TogglePostLike(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	return &models.ToggleResponse{Liked: liked, Likes: likes}, nil
}

// ToggleBookmark flips the actor's bookmark on a post.
func (s *BlogService) ToggleBookmark(ctx context.Context, actorID, postID uint) (*models.BookmarkResponse, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	bookmarked, bookmarks, err := s.engagementRepo.TogglePostBookmark(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	return &models.BookmarkResponse{Bookmarked: bookmarked, Bookmarks: bookmarks}, nil
}

func (s *BlogService) postEditableBy(ctx context.Context, postID, actorID uint, actorRole string) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, err
	}

	if post.AuthorID != actorID && actorRole != models.RoleAdmin {
		return nil, models.NewForbiddenError("You can only manage your own posts")
	}
	return post, nil
}
