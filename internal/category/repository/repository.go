package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/akarpov/online-store/internal/category/domain"
)

// GormCategoryRepository persists categories in PostgreSQL via GORM.
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new category repository.
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// AutoMigrate creates or updates the categories table.
func (r *GormCategoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{})
}

func (r *GormCategoryRepository) Create(category *domain.Category) error {
	return r.db.Create(category).Error
}

func (r *GormCategoryRepository) FindByID(id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindActiveByID looks up a category scoped to is_active = true. Returns
// (nil, nil) when no active row matches.
func (r *GormCategoryRepository) FindActiveByID(id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindAllActive() ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) Update(category *domain.Category) error {
	return r.db.Save(category).Error
}

// Deactivate soft-deletes the category; existing products keep referencing
// the row but can no longer be mutated under it.
func (r *GormCategoryRepository) Deactivate(id uint) error {
	return r.db.Model(&domain.Category{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
