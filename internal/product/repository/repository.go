package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/akarpov/online-store/internal/product/domain"
)

// GormProductRepository persists products in PostgreSQL via GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate creates or updates the products table.
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

// applyFilter translates the listing filter into WHERE clauses. The active
// scope is always applied; the caller has already validated price bounds.
func applyFilter(tx *gorm.DB, f domain.Filter) *gorm.DB {
	tx = tx.Where("is_active = ?", true)
	if f.CategoryID != nil {
		tx = tx.Where("category_id = ?", *f.CategoryID)
	}
	if f.MinPrice != nil {
		tx = tx.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		tx = tx.Where("price <= ?", *f.MaxPrice)
	}
	if f.InStock != nil {
		if *f.InStock {
			tx = tx.Where("stock > 0")
		} else {
			tx = tx.Where("stock = 0")
		}
	}
	if f.SellerID != nil {
		tx = tx.Where("seller_id = ?", *f.SellerID)
	}
	return tx
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

// FindByID looks a product up regardless of its active flag.
func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindActiveByID looks up a product scoped to is_active = true. Returns
// (nil, nil) when no active row matches.
func (r *GormProductRepository) FindActiveByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindActive returns one page of active products matching the filter,
// ordered by ascending id so repeated pagination over an unchanged dataset
// is stable.
func (r *GormProductRepository) FindActive(filter domain.Filter, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := applyFilter(r.db.Model(&domain.Product{}), filter).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, err
}

// FindActiveByCategory returns all active products of a category.
func (r *GormProductRepository) FindActiveByCategory(categoryID uint) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.
		Where("is_active = ? AND category_id = ?", true, categoryID).
		Order("id ASC").
		Find(&products).Error
	return products, err
}

// CountActive counts active products matching the filter.
func (r *GormProductRepository) CountActive(filter domain.Filter) (int64, error) {
	var count int64
	err := applyFilter(r.db.Model(&domain.Product{}), filter).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

// Deactivate soft-deletes the product by flipping is_active; the row is kept.
func (r *GormProductRepository) Deactivate(id uint) error {
	return r.db.Model(&domain.Product{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *GormProductRepository) UpdateStock(id uint, stock int) error {
	return r.db.Model(&domain.Product{}).
		Where("id = ?", id).
		Update("stock", stock).Error
}
