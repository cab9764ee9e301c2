package domain

import (
	"errors"
	"time"
)

// Category groups products. Inactive categories stay in the table but admit
// no product associations.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// ErrCategoryNotFound is returned when a category is missing or inactive.
var ErrCategoryNotFound = errors.New("category not found or inactive")

// CategoryRepository defines the contract for category data access.
type CategoryRepository interface {
	Create(category *Category) error
	FindByID(id uint) (*Category, error)
	FindActiveByID(id uint) (*Category, error)
	FindAllActive() ([]Category, error)
	Update(category *Category) error
	Deactivate(id uint) error
}
