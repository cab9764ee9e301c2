package domain

import (
	"errors"
	"time"
)

// Review is a buyer's rating of a product.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrNotAuthor      = errors.New("only the author can delete this review")
)

// ReviewRepository defines the contract for review data access.
type ReviewRepository interface {
	Create(review *Review) error
	FindByID(id uint) (*Review, error)
	FindByProduct(productID uint) ([]Review, error)
	AverageRating(productID uint) (float64, error)
	Delete(id uint) error
}
