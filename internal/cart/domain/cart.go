package domain

import (
	"errors"
	"time"
)

// CartItem is one product line in a user's cart. A (user, product) pair maps
// to a single row; adding the same product again raises the quantity.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_cart_user_product,unique"`
	ProductID uint      `json:"product_id" gorm:"not null;index:idx_cart_user_product,unique"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (CartItem) TableName() string {
	return "cart_items"
}

var (
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrEmptyCart       = errors.New("cart is empty")
)

// CartRepository defines the contract for cart data access.
type CartRepository interface {
	FindByUser(userID uint) ([]CartItem, error)
	FindItem(userID, productID uint) (*CartItem, error)
	Create(item *CartItem) error
	Update(item *CartItem) error
	Delete(id uint) error
	Clear(userID uint) error
}
