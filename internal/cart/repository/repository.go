package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/akarpov/online-store/internal/cart/domain"
)

// GormCartRepository persists cart items in PostgreSQL via GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// AutoMigrate creates or updates the cart_items table.
func (r *GormCartRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.CartItem{})
}

func (r *GormCartRepository) FindByUser(userID uint) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error
	return items, err
}

// FindItem returns the user's cart line for a product, (nil, nil) if absent.
func (r *GormCartRepository) FindItem(userID, productID uint) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepository) Create(item *domain.CartItem) error {
	return r.db.Create(item).Error
}

func (r *GormCartRepository) Update(item *domain.CartItem) error {
	return r.db.Save(item).Error
}

func (r *GormCartRepository) Delete(id uint) error {
	return r.db.Delete(&domain.CartItem{}, id).Error
}

func (r *GormCartRepository) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error
}
