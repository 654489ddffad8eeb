package repository

import (
	"context"
	"errors"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository defines interface for wishlist operations
type WishlistRepository interface {
	Add(ctx context.Context, item *models.WishlistItem) error
	GetByID(ctx context.Context, id uint) (*models.WishlistItem, error)
	GetByUserAndProduct(ctx context.Context, userID, productID uint) (*models.WishlistItem, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.WishlistItem, error)
	Remove(ctx context.Context, id uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a new WishlistRepository
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Add(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *wishlistRepository) GetByID(ctx context.Context, id uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.db.WithContext(ctx).Preload("Product").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByUserAndProduct returns (nil, nil) when the pair has no entry.
// The duplicate check happens here, before insert, rather than by
// catching the unique-index violation.
func (r *wishlistRepository) GetByUserAndProduct(ctx context.Context, userID, productID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uint) ([]*models.WishlistItem, error) {
	var items []*models.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}

func (r *wishlistRepository) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.WishlistItem{}, id).Error
}
