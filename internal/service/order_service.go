package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/observability"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService handles checkout and order lifecycle. Checkout runs as a
// single database transaction: stock is re-checked and decremented, prices
// are snapshotted onto order lines, and the cart is cleared, so a stock
// conflict rolls the whole order back.
type OrderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

type CheckoutInput struct {
	ActorID     uint
	ShipName    string
	ShipAddress string
	ShipCity    string
	ShipZip     string
	ShipCountry string
}

type UpdateOrderStatusInput struct {
	OrderID uint
	Status  string
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, cartRepo repository.CartRepository) *OrderService {
	return &OrderService{db: db, orderRepo: orderRepo, cartRepo: cartRepo}
}

func (in CheckoutInput) validate() error {
	for _, f := range []struct{ name, value string }{
		{"Name", in.ShipName},
		{"Address", in.ShipAddress},
		{"City", in.ShipCity},
		{"Zip", in.ShipZip},
		{"Country", in.ShipCountry},
	} {
		if strings.TrimSpace(f.value) == "" {
			return models.NewValidationError(fmt.Sprintf("%s is required", f.name))
		}
	}
	return nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreateByUser(ctx, in.ActorID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, models.NewValidationError("Cart is empty")
	}

	order := &models.Order{
		Number:      newOrderNumber(),
		UserID:      in.ActorID,
		Status:      models.OrderStatusPending,
		ShipName:    in.ShipName,
		ShipAddress: in.ShipAddress,
		ShipCity:    in.ShipCity,
		ShipZip:     in.ShipZip,
		ShipCountry: in.ShipCountry,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range cart.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.NewConflictError(fmt.Sprintf("Product %d is no longer available", line.ProductID))
				}
				return err
			}
			if !product.Active {
				return models.NewConflictError(fmt.Sprintf("%s is no longer available", product.Name))
			}
			if product.Stock < line.Quantity {
				return models.NewConflictError(fmt.Sprintf("Not enough stock for %s", product.Name))
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return models.NewConflictError(fmt.Sprintf("Not enough stock for %s", product.Name))
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitCents: product.PriceCents,
				Quantity:  line.Quantity,
			})
			order.TotalCents += product.PriceCents * int64(line.Quantity)
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	observability.OrdersPlaced.Inc()
	return s.orderRepo.GetByID(ctx, order.ID)
}

// GetOrder loads an order for its owner; staff callers can read any order.
func (s *OrderService) GetOrder(ctx context.Context, actorID uint, actorRole string, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Order", orderID)
		}
		return nil, err
	}
	if order.UserID != actorID && actorRole != models.RoleAdmin {
		return nil, models.NewNotFoundError("Order", orderID)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, actorID uint, limit, offset int) ([]*models.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.orderRepo.ListByUser(ctx, actorID, limit, offset)
}

func (s *OrderService) ListAllOrders(ctx context.Context, status string, limit, offset int) ([]*models.Order, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, models.NewValidationError("Unknown order status")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.orderRepo.ListAll(ctx, status, limit, offset)
}

// UpdateStatus moves an order along the status graph. Moving to cancelled
// restores the reserved stock in the same transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, in UpdateOrderStatusInput) (*models.Order, error) {
	if !models.ValidOrderStatus(in.Status) {
		return nil, models.NewValidationError("Unknown order status")
	}

	order, err := s.orderRepo.GetByID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Order", in.OrderID)
		}
		return nil, err
	}

	if !models.CanTransition(order.Status, in.Status) {
		return nil, models.NewConflictError(fmt.Sprintf("Cannot move order from %s to %s", order.Status, in.Status))
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Status == models.OrderStatusCancelled {
			for _, line := range order.Items {
				err := tx.Model(&models.Product{}).
					Where("id = ?", line.ProductID).
					Update("stock", gorm.Expr("stock + ?", line.Quantity)).Error
				if err != nil {
					return err
				}
			}
		}
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", in.Status).Error
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// CancelOrder is the customer-facing cancel. Only the owner may cancel,
// and only while the status graph allows it.
func (s *OrderService) CancelOrder(ctx context.Context, actorID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Order", orderID)
		}
		return nil, err
	}
	if order.UserID != actorID {
		return nil, models.NewNotFoundError("Order", orderID)
	}

	return s.UpdateStatus(ctx, UpdateOrderStatusInput{OrderID: orderID, Status: models.OrderStatusCancelled})
}
