package domain

import (
	"errors"
	"time"
)

// Order statuses
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusCancelled = "cancelled"
)

// Order is a placed purchase built from the user's cart. Item prices are
// frozen at purchase time; later product edits do not touch past orders.
type Order struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	Number    string      `json:"number" gorm:"not null;uniqueIndex"`
	UserID    uint        `json:"user_id" gorm:"not null;index"`
	Status    string      `json:"status" gorm:"not null;default:'pending'"`
	Total     float64     `json:"total" gorm:"not null"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one purchased product line.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotOrderOwner     = errors.New("order belongs to another user")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotCancellable    = errors.New("only pending orders can be cancelled")
)

// OrderRepository defines the contract for order data access.
type OrderRepository interface {
	Create(order *Order) error
	FindByID(id uint) (*Order, error)
	FindByUser(userID uint, limit, offset int) ([]Order, error)
	UpdateStatus(id uint, status string) error
}
