package repository

import (
	"context"
	"errors"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// EngagementRepository flips like/bookmark membership rows. Each toggle
// runs in a transaction: probe the linking row, insert or delete it, then
// re-derive the counter from the table so it can never go negative or
// drift from the set.
type EngagementRepository interface {
	ToggleCommentLike(ctx context.Context, userID, commentID uint) (bool, int64, error)
	TogglePostLike(ctx context.Context, userID, postID uint) (bool, int64, error)
	TogglePostBookmark(ctx context.Context, userID, postID uint) (bool, int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new EngagementRepository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) ToggleCommentLike(ctx context.Context, userID, commentID uint) (bool, int64, error) {
	var active bool
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CommentLike
		findErr := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		switch {
		case findErr == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			active = false
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.CommentLike{UserID: userID, CommentID: commentID}).Error; err != nil {
				return err
			}
			active = true
		default:
			return findErr
		}
		return tx.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	})
	return active, count, err
}

func (r *engagementRepository) TogglePostLike(ctx context.Context, userID, postID uint) (bool, int64, error) {
	var active bool
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PostLike
		findErr := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case findErr == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			active = false
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.PostLike{UserID: userID, PostID: postID}).Error; err != nil {
				return err
			}
			active = true
		default:
			return findErr
		}
		return tx.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	})
	return active, count, err
}

func (r *engagementRepository) TogglePostBookmark(ctx context.Context, userID, postID uint) (bool, int64, error) {
	var active bool
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PostBookmark
		findErr := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case findErr == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			active = false
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.PostBookmark{UserID: userID, PostID: postID}).Error; err != nil {
				return err
			}
			active = true
		default:
			return findErr
		}
		return tx.Model(&models.PostBookmark{}).Where("post_id = ?", postID).Count(&count).Error
	})
	return active, count, err
}
