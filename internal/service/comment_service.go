package service

import (
	"context"
	"errors"

	"storefront/internal/models"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 10000

// CommentService owns blog comment rules: flat two-level threading,
// author-only edits, owner-or-admin deletes with reply cascade, and the
// like toggle.
type CommentService struct {
	commentRepo    repository.CommentRepository
	blogRepo       repository.BlogRepository
	engagementRepo repository.EngagementRepository
}

type CreateCommentInput struct {
	ActorID  uint
	PostID   uint
	ParentID *uint
	Content  string
}

type UpdateCommentInput struct {
	ActorID   uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	ActorID   uint
	ActorRole string
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	blogRepo repository.BlogRepository,
	engagementRepo repository.EngagementRepository,
) *CommentService {
	return &CommentService{
		commentRepo:    commentRepo,
		blogRepo:       blogRepo,
		engagementRepo: engagementRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.blogRepo.GetByID(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Comment", *in.ParentID)
			}
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
		if parent.ParentID != nil {
			return nil, models.NewValidationError("Replies cannot be nested further")
		}
	}

	comment := &models.Comment{
		Content:  in.Content,
		UserID:   in.ActorID,
		PostID:   in.PostID,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListThreads returns the root threads for a post, newest root first.
func (s *CommentService) ListThreads(ctx context.Context, postID uint) ([]*models.CommentThread, error) {
	if _, err := s.blogRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, err
	}

	flat, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(flat), nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", in.CommentID)
		}
		return nil, err
	}

	if comment.UserID != in.ActorID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes a comment. Deleting a root also removes its direct
// replies in the same transaction.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", in.CommentID)
		}
		return nil, err
	}

	if comment.UserID != in.ActorID && in.ActorRole != models.RoleAdmin {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.DeleteWithReplies(ctx, in.CommentID); err != nil {
		return nil, err
	}

	return comment, nil
}

// ToggleLike flips the actor's like on a comment and returns the new
// membership and count.
func (s *CommentService) ToggleLike(ctx context.Context, actorID, commentID uint) (*models.ToggleResponse, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, err
	}

	liked, likes, err := s.engagementRepo.ToggleCommentLike(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}
	return &models.ToggleResponse{Liked: liked, Likes: likes}, nil
}

// ListRecent returns the newest comments across all posts for the admin
// moderation view.
func (s *CommentService) ListRecent(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	return s.commentRepo.ListRecent(ctx, limit, offset)
}
