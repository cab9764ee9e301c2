package query

import (
	"fmt"

	categorydomain "github.com/akarpov/online-store/internal/category/domain"
	"github.com/akarpov/online-store/internal/product/domain"
)

// ListByCategoryQuery represents the query to list a category's products
type ListByCategoryQuery struct {
	CategoryID uint
}

// ListByCategoryHandler handles list by category query
type ListByCategoryHandler struct {
	products   domain.ProductRepository
	categories categorydomain.CategoryRepository
}

// NewListByCategoryHandler creates a new list by category handler
func NewListByCategoryHandler(products domain.ProductRepository, categories categorydomain.CategoryRepository) *ListByCategoryHandler {
	return &ListByCategoryHandler{products: products, categories: categories}
}

// Handle executes the query. The category itself must be active, otherwise
// the whole listing is not found.
func (h *ListByCategoryHandler) Handle(q ListByCategoryQuery) ([]domain.Product, error) {
	category, err := h.categories.FindActiveByID(q.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}

	products, err := h.products.FindActiveByCategory(q.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
