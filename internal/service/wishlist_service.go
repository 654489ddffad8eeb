package service

import (
	"context"
	"errors"

	"storefront/internal/models"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

// WishlistService manages the per-user saved-products list. Each
// user/product pair appears at most once; a second add is a conflict,
// not an idempotent no-op.
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

func (s *WishlistService) Add(ctx context.Context, actorID, productID uint) (*models.WishlistItem, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", productID)
		}
		return nil, err
	}
	if !product.Active {
		return nil, models.NewNotFoundError("Product", productID)
	}

	existing, err := s.wishlistRepo.GetByUserAndProduct(ctx, actorID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Product is already in your wishlist")
	}

	item := &models.WishlistItem{UserID: actorID, ProductID: productID}
	if err := s.wishlistRepo.Add(ctx, item); err != nil {
		return nil, err
	}

	return s.wishlistRepo.GetByID(ctx, item.ID)
}

func (s *WishlistService) List(ctx context.Context, actorID uint) ([]*models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(ctx, actorID)
}

// Remove deletes the actor's wishlist entry for a product. A missing
// entry is not found, so remove is observable only for members.
func (s *WishlistService) Remove(ctx context.Context, actorID, productID uint) error {
	item, err := s.wishlistRepo.GetByUserAndProduct(ctx, actorID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return models.NewNotFoundError("Wishlist item", productID)
	}

	return s.wishlistRepo.Remove(ctx, item.ID)
}
