package query

import (
	productdomain "github.com/akarpov/online-store/internal/product/domain"
	"github.com/akarpov/online-store/internal/review/domain"
)

// ListByProductQuery represents the review listing for a product
type ListByProductQuery struct {
	ProductID uint
}

// ProductReviews is the review listing plus the aggregated rating.
type ProductReviews struct {
	Items         []domain.Review `json:"items"`
	AverageRating float64         `json:"average_rating"`
}

// ListByProductHandler handles the review listing
type ListByProductHandler struct {
	reviews  domain.ReviewRepository
	products productdomain.ProductRepository
}

func NewListByProductHandler(reviews domain.ReviewRepository, products productdomain.ProductRepository) *ListByProductHandler {
	return &ListByProductHandler{reviews: reviews, products: products}
}

func (h *ListByProductHandler) Handle(q ListByProductQuery) (*ProductReviews, error) {
	product, err := h.products.FindActiveByID(q.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productdomain.ErrProductNotFound
	}

	items, err := h.reviews.FindByProduct(q.ProductID)
	if err != nil {
		return nil, err
	}

	avg, err := h.reviews.AverageRating(q.ProductID)
	if err != nil {
		return nil, err
	}

	return &ProductReviews{Items: items, AverageRating: avg}, nil
}
