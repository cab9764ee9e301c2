package query

import (
	"fmt"

	categorydomain "github.com/akarpov/online-store/internal/category/domain"
	"github.com/akarpov/online-store/internal/product/domain"
)

// GetProductQuery represents the query to get a single product
type GetProductQuery struct {
	ProductID uint
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	products   domain.ProductRepository
	categories categorydomain.CategoryRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(products domain.ProductRepository, categories categorydomain.CategoryRepository) *GetProductHandler {
	return &GetProductHandler{products: products, categories: categories}
}

// Handle executes the get product query. A product whose category has been
// retired is reported as unavailable even though its own row is active.
func (h *GetProductHandler) Handle(q GetProductQuery) (*domain.Product, error) {
	product, err := h.products.FindActiveByID(q.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	category, err := h.categories.FindActiveByID(product.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}

	return product, nil
}
