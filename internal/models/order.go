package models

import (
	"time"

	"gorm.io/gorm"
)

// Order status values. Transitions are validated by CanTransition.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order is a checked-out cart snapshot owned by a user.
type Order struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Number      string         `gorm:"unique;not null" json:"number"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status      string         `gorm:"not null;default:pending;index" json:"status"`
	TotalCents  int64          `gorm:"not null" json:"total_cents"`
	ShipName    string         `gorm:"not null" json:"ship_name"`
	ShipAddress string         `gorm:"not null" json:"ship_address"`
	ShipCity    string         `gorm:"not null" json:"ship_city"`
	ShipZip     string         `gorm:"not null" json:"ship_zip"`
	ShipCountry string         `gorm:"not null" json:"ship_country"`
	Items       []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// OrderItem snapshots a product line at checkout time. UnitCents is the
// price at purchase, immune to later catalog edits.
type OrderItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	ProductID uint           `gorm:"not null" json:"product_id"`
	Product   *Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Name      string         `gorm:"not null" json:"name"`
	UnitCents int64          `gorm:"not null" json:"unit_cents"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// orderTransitions enumerates the legal status graph.
var orderTransitions = map[string][]string{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
