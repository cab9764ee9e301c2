package repository

import (
	"gorm.io/gorm"

	"github.com/akarpov/online-store/internal/review/domain"
)

// GormReviewRepository persists reviews in PostgreSQL via GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new review repository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// AutoMigrate creates or updates the reviews table.
func (r *GormReviewRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Review{})
}

func (r *GormReviewRepository) Create(review *domain.Review) error {
	return r.db.Create(review).Error
}

func (r *GormReviewRepository) FindByID(id uint) (*domain.Review, error) {
	var review domain.Review
	err := r.db.First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormReviewRepository) FindByProduct(productID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.Where("product_id = ?", productID).Order("id DESC").Find(&reviews).Error
	return reviews, err
}

// AverageRating returns the mean rating of a product, 0 when unreviewed.
func (r *GormReviewRepository) AverageRating(productID uint) (float64, error) {
	var avg float64
	err := r.db.Model(&domain.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Review{}, id).Error
}
