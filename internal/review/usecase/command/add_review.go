package command

import (
	"strings"

	productdomain "github.com/akarpov/online-store/internal/product/domain"
	"github.com/akarpov/online-store/internal/review/domain"
)

// AddReviewCommand represents the intent to review a product
type AddReviewCommand struct {
	UserID    uint
	ProductID uint
	Rating    int
	Comment   string
}

// AddReviewHandler handles review creation
type AddReviewHandler struct {
	reviews  domain.ReviewRepository
	products productdomain.ProductRepository
}

func NewAddReviewHandler(reviews domain.ReviewRepository, products productdomain.ProductRepository) *AddReviewHandler {
	return &AddReviewHandler{reviews: reviews, products: products}
}

// Handle creates a review for an active product. Ratings are 1 through 5.
func (h *AddReviewHandler) Handle(cmd AddReviewCommand) (*domain.Review, error) {
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	product, err := h.products.FindActiveByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productdomain.ErrProductNotFound
	}

	review := &domain.Review{
		ProductID: cmd.ProductID,
		UserID:    cmd.UserID,
		Rating:    cmd.Rating,
		Comment:   strings.TrimSpace(cmd.Comment),
	}

	if err := h.reviews.Create(review); err != nil {
		return nil, err
	}

	return h.reviews.FindByID(review.ID)
}
