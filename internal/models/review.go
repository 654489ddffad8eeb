package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a user's rating of a product.
// The combination of UserID and ProductID must be unique.
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_review_user_product" json:"user_id"`
	ProductID uint           `gorm:"not null;uniqueIndex:idx_review_user_product" json:"product_id"`
	Rating    int            `gorm:"not null" json:"rating"`
	Title     string         `json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
