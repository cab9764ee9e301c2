package domain

import "time"

// Product represents a catalog product owned by a seller. Deactivation is a
// soft delete: the row stays in place with IsActive false.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	SellerID    uint      `json:"seller_id" gorm:"not null;index"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// InStock reports whether the product can currently be sold.
func (p *Product) InStock() bool {
	return p.Stock > 0 && p.IsActive
}

// Filter narrows catalog listings. Every field is optional; set fields are
// combined with AND on top of the implicit is_active = true predicate.
type Filter struct {
	CategoryID *uint
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
	SellerID   *uint
}

// ListResult is a single catalog page plus the total match count.
type ListResult struct {
	Items    []Product `json:"items"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// ProductRepository defines the contract for product data access.
// Active* methods are scoped to is_active = true; FindByID is not, so
// deactivated rows stay reachable for audit checks.
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindActiveByID(id uint) (*Product, error)
	FindActive(filter Filter, limit, offset int) ([]Product, error)
	FindActiveByCategory(categoryID uint) ([]Product, error)
	CountActive(filter Filter) (int64, error)
	Update(product *Product) error
	Deactivate(id uint) error
	UpdateStock(id uint, stock int) error
}
