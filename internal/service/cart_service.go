package service

import (
	"context"
	"errors"

	"storefront/internal/models"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

const (
	minCartQuantity = 1
	maxCartQuantity = 99
)

// CartService manages per-user carts. Adding a product already in the
// cart merges into the existing line, and a quantity update of zero
// removes the line.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

type AddCartItemInput struct {
	ActorID   uint
	ProductID uint
	Quantity  int
}

type UpdateCartItemInput struct {
	ActorID  uint
	ItemID   uint
	Quantity int
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *CartService) GetCart(ctx context.Context, actorID uint) (*models.CartResponse, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return &models.CartResponse{Cart: cart, SubtotalCents: cart.Subtotal()}, nil
}

func (s *CartService) AddItem(ctx context.Context, in AddCartItemInput) (*models.CartResponse, error) {
	if in.Quantity < minCartQuantity || in.Quantity > maxCartQuantity {
		return nil, models.NewValidationError("Quantity must be between 1 and 99")
	}

	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", in.ProductID)
		}
		return nil, err
	}
	if !product.Active {
		return nil, models.NewNotFoundError("Product", in.ProductID)
	}

	cart, err := s.cartRepo.GetOrCreateByUser(ctx, in.ActorID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.GetItemByProduct(ctx, cart.ID, in.ProductID)
	if err != nil {
		return nil, err
	}

	quantity := in.Quantity
	if existing != nil {
		quantity += existing.Quantity
	}
	if quantity > maxCartQuantity {
		quantity = maxCartQuantity
	}
	if product.Stock < quantity {
		return nil, models.NewConflictError("Not enough stock available")
	}

	if existing != nil {
		existing.Quantity = quantity
		if err := s.cartRepo.UpdateItem(ctx, existing); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{CartID: cart.ID, ProductID: in.ProductID, Quantity: quantity}
		if err := s.cartRepo.AddItem(ctx, item); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, in.ActorID)
}

// UpdateItem sets a line's quantity. Quantity zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, in UpdateCartItemInput) (*models.CartResponse, error) {
	if in.Quantity < 0 || in.Quantity > maxCartQuantity {
		return nil, models.NewValidationError("Quantity must be between 0 and 99")
	}

	item, err := s.itemOwnedBy(ctx, in.ItemID, in.ActorID)
	if err != nil {
		return nil, err
	}

	if in.Quantity == 0 {
		if err := s.cartRepo.RemoveItem(ctx, item.ID); err != nil {
			return nil, err
		}
		return s.GetCart(ctx, in.ActorID)
	}

	product, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Stock < in.Quantity {
		return nil, models.NewConflictError("Not enough stock available")
	}

	item.Quantity = in.Quantity
	if err := s.cartRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, in.ActorID)
}

func (s *CartService) RemoveItem(ctx context.Context, actorID, itemID uint) (*models.CartResponse, error) {
	item, err := s.itemOwnedBy(ctx, itemID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.RemoveItem(ctx, item.ID); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, actorID)
}

func (s *CartService) ClearCart(ctx context.Context, actorID uint) (*models.CartResponse, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Clear(ctx, cart.ID); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, actorID)
}

// itemOwnedBy loads a cart line and verifies it belongs to the actor's
// cart. A foreign line reads as not found rather than forbidden, so item
// ids cannot be probed across users.
func (s *CartService) itemOwnedBy(ctx context.Context, itemID, actorID uint) (*models.CartItem, error) {
	item, err := s.cartRepo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Cart item", itemID)
		}
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreateByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, models.NewNotFoundError("Cart item", itemID)
	}

	return item, nil
}
